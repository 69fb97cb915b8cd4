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

// SignupHandler registers a user and echoes it back without the password
// hash.
func SignupHandler(c *gin.Context, authService *usecase.AuthService, logger *zap.Logger) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", "signup")
		utils.Message(c, http.StatusBadRequest, "Invalid input parameter")
		return
	}

	user, err := authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			utils.Message(c, http.StatusBadRequest, "Invalid input parameter")
		case errors.Is(err, usecase.ErrDuplicateEmail):
			utils.Message(c, http.StatusBadRequest, "Email address is already in use.")
		default:
			internalError(c, logger, err)
		}
		return
	}

	utils.Message(c, http.StatusOK, dto.ToUserResponse(user))
}
