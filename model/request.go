package model

import (
	"context"

	"github.com/labstack/echo/v5"
)

type ContextKey string

const REQUEST_CONTEXT_KEY ContextKey = "request_context"

// RequestContext is attached to every request by the request context middleware.
// Handlers log RequestID with each reconcile, mapping and script request.
type RequestContext struct {
	// RequestID is taken from X-Request-Id or generated.
	RequestID string `json:"request_id"`
	Url       string `json:"url"`
	// HxRequest is set for requests of the htmx web shell.
	HxRequest bool `json:"hx_request"`
}

// SetRequestContext stores value in the request context of c.
func SetRequestContext(c *echo.Context, value RequestContext) {
	ctx := context.WithValue(c.Request().Context(), REQUEST_CONTEXT_KEY, value)
	c.SetRequest(c.Request().WithContext(ctx))
}

// GetRequestContext reads the RequestContext from an *echo.Context or a
// context.Context. The zero value is returned if none is set.
func GetRequestContext(c interface{}) RequestContext {
	var ctx context.Context
	switch v := c.(type) {
	case context.Context:
		ctx = v
	case *echo.Context:
		ctx = v.Request().Context()
	default:
		panic("invalid context, must be echo.Context or context.Context")
	}
	value, ok := ctx.Value(REQUEST_CONTEXT_KEY).(RequestContext)
	if !ok {
		return RequestContext{}
	}
	return value
}

// RequestIDFromContext returns the request id stored in ctx, or "" if none.
func RequestIDFromContext(ctx context.Context) string {
	return GetRequestContext(ctx).RequestID
}
