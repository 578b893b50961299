package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Audit records a structured audit event after each successful mutation.
// The gradebook has no SQL audit table; events go to the log stream with a
// unique event ID so they can be correlated downstream.
func Audit(logger *zap.Logger, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		logger.Info("audit_event",
			zap.String("event_id", uuid.NewString()),
			zap.String("action", action),
			zap.String("resource", resource),
			zap.String("role", string(ActiveRole(c))),
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("latency_ms", time.Since(start).Milliseconds()),
			zap.String("ip", c.ClientIP()),
		)
	}
}
