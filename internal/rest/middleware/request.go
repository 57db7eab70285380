package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chairflow/chairflow/internal/types"
)

// RequestID attaches a request id to the context, reusing the caller's
// X-Request-ID header when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(types.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(string(types.CtxRequestID), requestID)
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), types.CtxRequestID, requestID))
		c.Header(types.HeaderRequestID, requestID)
		c.Next()
	}
}
