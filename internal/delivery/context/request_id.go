// Package context holds the values the HTTP middlewares attach to a request.
package context

import (
	"github.com/labstack/echo/v4"
)

// ContextKey names a value stored on echo.Context.
type ContextKey string

const (
	KeyRequestID ContextKey = "request_id"

	// HeaderXRequestID is read from callers and echoed on every response.
	HeaderXRequestID = echo.HeaderXRequestID
)

// SetRequestID records the request id on c.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// RequestID returns the id set by the request-id middleware, or "" when it did not run.
func RequestID(c echo.Context) string {
	id, _ := c.Get(string(KeyRequestID)).(string)

	return id
}
