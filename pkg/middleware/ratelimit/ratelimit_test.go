package ratelimit_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusbridge/campusbridge/pkg/middleware/ratelimit"
	"github.com/campusbridge/campusbridge/pkg/server/router"
	ginrouter "github.com/campusbridge/campusbridge/pkg/server/router/gin"
)

func newLimitedRouter(limiter ratelimit.RateLimiter, keyFunc func(router.Context) string) *ginrouter.GinRouter {
	r := ginrouter.NewRouter()
	r.Use(ratelimit.RateLimit(limiter, ratelimit.Config{KeyFunc: keyFunc}))
	r.GET("/", func(c router.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	return r
}

func TestRateLimitRejectsOverBurst(t *testing.T) {
	limiter := ratelimit.NewTokenBucketLimiter(0.001, 2)
	r := newLimitedRouter(limiter, func(router.Context) string { return "client" })

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("over-burst request: status = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "1" {
		t.Fatalf("Retry-After = %q, want 1", got)
	}
}

func TestRateLimitIsPerKey(t *testing.T) {
	limiter := ratelimit.NewTokenBucketLimiter(0.001, 1)

	if !limiter.Allow("a") {
		t.Fatal("first request for key a should pass")
	}
	if limiter.Allow("a") {
		t.Fatal("second request for key a should be limited")
	}
	if !limiter.Allow("b") {
		t.Fatal("key b has its own bucket and should pass")
	}
}

func TestRateLimitDistinctClients(t *testing.T) {
	limiter := ratelimit.NewTokenBucketLimiter(0.001, 1)
	next := ""
	r := newLimitedRouter(limiter, func(router.Context) string { return next })

	for i, client := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		next = client
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/?i=%d", i), nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("client %s: status = %d, want 200", client, rec.Code)
		}
	}
}
