package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CtxRequestIDKey = "requestID"

	requestIDHeader = "X-Request-ID"
)

// RequestID assigns each request a correlation id, honouring one supplied by
// an upstream proxy.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(CtxRequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
