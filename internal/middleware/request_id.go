// Package middleware provides the HTTP middleware stack for the costing service.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request correlation ID in both directions.
const RequestIDHeader = "X-Request-ID"

// ContextKey is the type used for middleware context keys so they cannot
// collide with handler-set values.
type ContextKey string

// RequestIDKey is the gin context key holding the correlation ID.
const RequestIDKey ContextKey = "request_id"

// RequestID tags every request with a correlation ID. A caller-supplied
// X-Request-ID is kept so IDs survive across service hops; otherwise a fresh
// UUID is issued. The ID is echoed on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(string(RequestIDKey), id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the correlation ID set by RequestID, or "" when the
// middleware did not run.
func GetRequestID(c *gin.Context) string {
	if v, ok := c.Get(string(RequestIDKey)); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
