// Package gin implements router.Router on top of gin-gonic/gin.
package gin

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"

	ginpkg "github.com/gin-gonic/gin"

	"github.com/campusbridge/campusbridge/pkg/server/router"
)

// GinRouter implements router.Router using a shared gin engine. Route
// groups share the engine and the registered-OPTIONS set with the root.
type GinRouter struct {
	engine     *ginpkg.Engine
	group      *ginpkg.RouterGroup
	middleware []router.MiddlewareFunc
	mu         *sync.RWMutex
	preflight  *map[string]struct{}
}

// NewRouter creates a gin-backed router in release mode.
func NewRouter() *GinRouter {
	ginpkg.SetMode(ginpkg.ReleaseMode)
	preflight := make(map[string]struct{})
	return &GinRouter{
		engine:    ginpkg.New(),
		mu:        &sync.RWMutex{},
		preflight: &preflight,
	}
}

// NoRoute registers the handler invoked for unrouted paths.
func (r *GinRouter) NoRoute(h router.HandlerFunc) {
	r.engine.NoRoute(func(gc *ginpkg.Context) {
		ctx := newContext(gc)
		if err := h(ctx); err != nil && !ctx.Response().Written() {
			gc.AbortWithStatus(http.StatusInternalServerError)
		}
	})
}

func (r *GinRouter) GET(path string, h router.HandlerFunc, mw ...router.MiddlewareFunc) {
	r.handle(http.MethodGet, path, h, mw)
}

func (r *GinRouter) POST(path string, h router.HandlerFunc, mw ...router.MiddlewareFunc) {
	r.handle(http.MethodPost, path, h, mw)
}

func (r *GinRouter) PUT(path string, h router.HandlerFunc, mw ...router.MiddlewareFunc) {
	r.handle(http.MethodPut, path, h, mw)
}

func (r *GinRouter) DELETE(path string, h router.HandlerFunc, mw ...router.MiddlewareFunc) {
	r.handle(http.MethodDelete, path, h, mw)
}

func (r *GinRouter) PATCH(path string, h router.HandlerFunc, mw ...router.MiddlewareFunc) {
	r.handle(http.MethodPatch, path, h, mw)
}

// Group creates a route group with a common prefix. Group middleware is
// appended after the parent's middleware.
func (r *GinRouter) Group(prefix string, mw ...router.MiddlewareFunc) router.Router {
	r.mu.RLock()
	combined := append([]router.MiddlewareFunc{}, r.middleware...)
	r.mu.RUnlock()
	combined = append(combined, mw...)

	var group *ginpkg.RouterGroup
	if r.group == nil {
		group = r.engine.Group(prefix)
	} else {
		group = r.group.Group(prefix)
	}

	return &GinRouter{
		engine:     r.engine,
		group:      group,
		middleware: combined,
		mu:         r.mu,
		preflight:  r.preflight,
	}
}

// Use applies middleware to every route registered on this router.
func (r *GinRouter) Use(mw ...router.MiddlewareFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, mw...)
}

func (r *GinRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.engine.ServeHTTP(w, req)
}

func (r *GinRouter) handle(method, path string, h router.HandlerFunc, routeMW []router.MiddlewareFunc) {
	r.mu.RLock()
	global := append([]router.MiddlewareFunc{}, r.middleware...)
	r.mu.RUnlock()

	ginHandler := func(gc *ginpkg.Context) {
		ctx := newContext(gc)
		handler := h
		for i := len(routeMW) - 1; i >= 0; i-- {
			handler = routeMW[i](handler)
		}
		for i := len(global) - 1; i >= 0; i-- {
			handler = global[i](handler)
		}
		if err := handler(ctx); err != nil && !ctx.Response().Written() {
			gc.AbortWithStatus(http.StatusInternalServerError)
		}
	}

	if r.group != nil {
		r.group.Handle(method, path, ginHandler)
	} else {
		r.engine.Handle(method, path, ginHandler)
	}
	r.ensurePreflightRoute(path)
}

// ensurePreflightRoute registers one OPTIONS handler per path so CORS
// preflight requests pass through the middleware chain.
func (r *GinRouter) ensurePreflightRoute(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := path
	if r.group != nil {
		key = r.group.BasePath() + path
	}
	if _, ok := (*r.preflight)[key]; ok {
		return
	}
	(*r.preflight)[key] = struct{}{}

	optionsHandler := func(gc *ginpkg.Context) {
		ctx := newContext(gc)
		handler := func(c router.Context) error {
			if !c.Response().Written() {
				c.Response().WriteHeader(http.StatusNoContent)
			}
			return nil
		}
		for i := len(r.middleware) - 1; i >= 0; i-- {
			handler = r.middleware[i](handler)
		}
		_ = handler(ctx)
	}

	if r.group != nil {
		r.group.Handle(http.MethodOptions, path, optionsHandler)
		return
	}
	r.engine.Handle(http.MethodOptions, path, optionsHandler)
}

type ginContext struct {
	ctx      *ginpkg.Context
	response router.ResponseWriter
}

func newContext(c *ginpkg.Context) *ginContext {
	return &ginContext{ctx: c, response: &ginResponseWriter{ResponseWriter: c.Writer}}
}

func (c *ginContext) Request() *http.Request          { return c.ctx.Request }
func (c *ginContext) SetRequest(r *http.Request)      { c.ctx.Request = r }
func (c *ginContext) Response() router.ResponseWriter { return c.response }
func (c *ginContext) SetResponse(w router.ResponseWriter) {
	c.response = w
}

func (c *ginContext) Param(name string) string { return c.ctx.Param(name) }
func (c *ginContext) Query(name string) string { return c.ctx.Query(name) }

// Bind decodes a JSON body. Multipart forms are read through FormValue
// and FormFile instead.
func (c *ginContext) Bind(v any) error {
	if c.ctx.Request.Body == nil || c.ctx.Request.Body == http.NoBody {
		return fmt.Errorf("request body is empty")
	}
	defer c.ctx.Request.Body.Close()

	contentType := c.ctx.GetHeader("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return fmt.Errorf("unsupported content type: %s", contentType)
	}
	return json.NewDecoder(c.ctx.Request.Body).Decode(v)
}

func (c *ginContext) FormValue(name string) string { return c.ctx.PostForm(name) }

func (c *ginContext) FormFile(name string) (*multipart.FileHeader, error) {
	return c.ctx.FormFile(name)
}

func (c *ginContext) ClientIP() string { return c.ctx.ClientIP() }

func (c *ginContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *ginContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain")
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *ginContext) Get(key string) any {
	v, ok := c.ctx.Get(key)
	if !ok {
		return nil
	}
	return v
}

func (c *ginContext) Set(key string, value any) { c.ctx.Set(key, value) }

// ginResponseWriter tracks write state so middleware can tell whether a
// handler already produced a response.
type ginResponseWriter struct {
	ginpkg.ResponseWriter
	mu      sync.RWMutex
	status  int
	written bool
}

func (w *ginResponseWriter) Status() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func (w *ginResponseWriter) Written() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.written
}

func (w *ginResponseWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.written {
		return
	}
	w.status = code
	w.written = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *ginResponseWriter) Write(b []byte) (int, error) {
	if !w.Written() {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *ginResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
