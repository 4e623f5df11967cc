package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger middleware logs HTTP requests
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// Process request
		c.Next()

		latency := time.Since(start)
		if raw != "" {
			path = path + "?" + raw
		}

		log.Printf("[HTTP] %s %s %d %v %s %s",
			c.Request.Method,
			path,
			c.Writer.Status(),
			latency,
			c.ClientIP(),
			c.Errors.String(),
		)
	}
}
