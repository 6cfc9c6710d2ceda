package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alisever/join-the-siege/pkg/logger"
)

// AccessLog writes one entry per request after it completes.
func AccessLog(log logger.Logger) gin.HandlerFunc {
	log = log.Named("access")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.FromContext(c.Request.Context(), log).Info("Request completed",
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("took", time.Since(start)),
			logger.String("client_ip", c.ClientIP()),
		)
	}
}
