package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shahafle/costs-manager/logger"
)

// RequestLogger logs every endpoint access and its response. Entries
// flow through the shared log pipeline like any other log line.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		logger.Get().Info("endpoint accessed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.String("ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()))

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
		}
		switch {
		case status >= 500:
			logger.Get().Error("endpoint response", fields...)
		case status >= 400:
			logger.Get().Warn("endpoint response", fields...)
		default:
			logger.Get().Info("endpoint response", fields...)
		}
	}
}
