package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prithidevghosh/speerNote/utils"
)

// RequestSizeLimiter caps request bodies at maxSize bytes. Declared lengths
// over the cap are refused up front; chunked bodies fail when read.
func RequestSizeLimiter(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			utils.Fail(c, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}

// SecurityHeaders sets the response headers every JSON endpoint should carry.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Next()
	}
}
