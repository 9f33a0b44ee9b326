package middleware

import (
	"go-payhr/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID memakai X-Request-ID dari caller kalau ada (gateway atau
// retry client), atau membuat UUID baru. ID yang sama dipantulkan di
// response header dan ikut ke outbox event untuk korelasi lintas proses.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set("request_id", rid)
		c.Header("X-Request-ID", rid)
		c.Request = c.Request.WithContext(
			contextutil.WithRequestID(c.Request.Context(), rid),
		)

		c.Next()
	}
}
