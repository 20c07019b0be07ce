package middleware

import (
	"github.com/google/uuid"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the request correlation id.
const RequestIDKey = "request_id"

const requestIDHeader = "X-Request-Id"

// RequestID tags every request with an id for log correlation, reusing the
// caller's header when a proxy already set one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
