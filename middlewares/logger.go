package middlewares

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger records one line per request once the handler has finished.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		id := c.Param("conversation_id")
		if id == "" {
			id = "-"
		}
		log.Printf("%s %s conversation=%s status=%d latency=%s",
			c.Request.Method, c.Request.URL.Path, id, c.Writer.Status(), time.Since(start))
	}
}
