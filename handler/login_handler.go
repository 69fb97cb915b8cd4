package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prithidevghosh/speerNote/dto"
	"github.com/prithidevghosh/speerNote/usecase"
	"github.com/prithidevghosh/speerNote/utils"
)

// LoginHandler answers with the bearer token under "message".
func LoginHandler(c *gin.Context, authService *usecase.AuthService, logger *zap.Logger) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", "login")
		utils.Message(c, http.StatusBadRequest, "Invalid input parameter")
		return
	}

	token, err := authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUnknownUser):
			utils.Message(c, http.StatusBadRequest, "Unregistered user")
		case errors.Is(err, usecase.ErrBadCredentials):
			utils.Message(c, http.StatusBadRequest, "Wrong password")
		default:
			internalError(c, logger, err)
		}
		return
	}

	utils.Message(c, http.StatusOK, token)
}
