package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prithidevghosh/speerNote/utils"
)

// RecoveryMiddleware turns a panic in a handler into a 500 and logs it with
// the stack.
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				utils.TrackError("panic", "recovered")
				logger.Error("panic recovered",
					zap.String("request_id", RequestID(c)),
					zap.String("path", c.Request.URL.Path),
					zap.Any("panic", err),
					zap.Stack("stack"),
				)
				utils.InternalError(c)
			}
		}()
		c.Next()
	}
}
