package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prithidevghosh/speerNote/middleware"
	"github.com/prithidevghosh/speerNote/usecase"
	"github.com/prithidevghosh/speerNote/utils"
)

// LogoutHandler revokes the token the request was authenticated with.
func LogoutHandler(c *gin.Context, authService *usecase.AuthService, logger *zap.Logger) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		utils.Unauthorized(c)
		return
	}

	if err := authService.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, logger, err, msgInvalidRequest)
		return
	}

	utils.OK(c, "Successfully logged out")
}
