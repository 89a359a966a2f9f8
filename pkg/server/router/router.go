// Package router defines an abstraction over HTTP routing so handlers
// and middleware do not depend on a concrete router implementation.
package router

import (
	"mime/multipart"
	"net/http"
)

// Router registers handlers for HTTP methods and paths.
type Router interface {
	GET(path string, handler HandlerFunc, middleware ...MiddlewareFunc)
	POST(path string, handler HandlerFunc, middleware ...MiddlewareFunc)
	PUT(path string, handler HandlerFunc, middleware ...MiddlewareFunc)
	DELETE(path string, handler HandlerFunc, middleware ...MiddlewareFunc)
	PATCH(path string, handler HandlerFunc, middleware ...MiddlewareFunc)

	// Group creates a route group with a common prefix and middleware.
	Group(prefix string, middleware ...MiddlewareFunc) Router

	// Use applies middleware to all routes registered on this router.
	Use(middleware ...MiddlewareFunc)

	ServeHTTP(w http.ResponseWriter, r *http.Request)
}

// HandlerFunc handles one request. A returned error that was not already
// written to the response is converted by the error-mapping layer.
type HandlerFunc func(Context) error

// MiddlewareFunc wraps a HandlerFunc and returns a new HandlerFunc.
type MiddlewareFunc func(HandlerFunc) HandlerFunc

// Context exposes the request and response in a router-agnostic way.
type Context interface {
	Request() *http.Request
	SetRequest(r *http.Request)

	Response() ResponseWriter
	SetResponse(w ResponseWriter)

	// Param returns a URL path parameter (e.g. /users/:id).
	Param(name string) string

	// Query returns a URL query parameter.
	Query(name string) string

	// Bind decodes a JSON request body into v.
	Bind(v any) error

	// FormValue returns a multipart/urlencoded form field.
	FormValue(name string) string

	// FormFile returns an uploaded file by form field name.
	FormFile(name string) (*multipart.FileHeader, error)

	// ClientIP returns the remote client address, honoring proxy headers.
	ClientIP() string

	JSON(code int, v any) error
	String(code int, s string) error

	// Get and Set share per-request values between middleware and handlers.
	Get(key string) any
	Set(key string, value any)
}

// ResponseWriter wraps http.ResponseWriter with response-state tracking.
type ResponseWriter interface {
	http.ResponseWriter

	// Status returns the status code written to the response.
	Status() int

	// Written reports whether the response header has been sent.
	Written() bool
}
