package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quipu/internal/core/appctx"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderUser      = "X-User"
)

// Trace middleware propagates the request id and the acting user through
// context so logging and the audit trail can pick them up.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := appctx.WithRequestID(c.Request.Context(), requestID)
		if user := c.GetHeader(HeaderUser); user != "" {
			ctx = appctx.WithUser(ctx, user)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Set("request_id", requestID)
		c.Header(HeaderRequestID, requestID)

		c.Next()
	}
}
