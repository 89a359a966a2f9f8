package requestid_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/campusbridge/campusbridge/pkg/middleware/requestid"
	"github.com/campusbridge/campusbridge/pkg/server/router"
	ginrouter "github.com/campusbridge/campusbridge/pkg/server/router/gin"
)

func TestRequestIDPreservesIncomingHeader(t *testing.T) {
	var seen string
	r := ginrouter.NewRouter()
	r.Use(requestid.RequestID())
	r.GET("/", func(c router.Context) error {
		seen = requestid.FromContext(c.Request().Context())
		return c.JSON(http.StatusOK, map[string]string{})
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestid.Header, "incoming-id")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if seen != "incoming-id" {
		t.Fatalf("context id = %q, want incoming-id", seen)
	}
	if got := rec.Header().Get(requestid.Header); got != "incoming-id" {
		t.Fatalf("response header = %q, want incoming-id", got)
	}
}

func TestRequestIDGeneratesWhenAbsent(t *testing.T) {
	var seen string
	r := ginrouter.NewRouter()
	r.Use(requestid.RequestID())
	r.GET("/", func(c router.Context) error {
		seen = requestid.FromContext(c.Request().Context())
		return c.JSON(http.StatusOK, map[string]string{})
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("no request id generated")
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("generated id %q is not a UUID: %v", seen, err)
	}
	if got := rec.Header().Get(requestid.Header); got != seen {
		t.Fatalf("response header = %q, want %q", got, seen)
	}
}

func TestFromContextMissing(t *testing.T) {
	if got := requestid.FromContext(nil); got != "" {
		t.Fatalf("got %q from nil context, want empty", got)
	}
	if got := requestid.FromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()); got != "" {
		t.Fatalf("got %q from bare context, want empty", got)
	}
}
