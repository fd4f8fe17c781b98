package config

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PerformanceLogger logs every request with its latency and flags slow ones.
func PerformanceLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency))

		if latency > 200*time.Millisecond {
			logger.Warn("slow request",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Duration("latency", latency))
		}
	}
}
