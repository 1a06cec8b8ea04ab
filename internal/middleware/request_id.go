package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const HeaderXRequestID = "X-Request-ID"

// RequestID keeps a caller-supplied UUID in X-Request-ID or mints a new one,
// echoes it on the response and stores it on the request context so
// upstream calls carry it along.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := uuid.NewString()
		if id, err := uuid.Parse(c.GetHeader(HeaderXRequestID)); err == nil {
			rid = id.String()
		}
		c.Set(string(ContextKeyRequestID), rid)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), ContextKeyRequestID, rid))
		c.Header(HeaderXRequestID, rid)
		c.Next()
	}
}
