package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prithidevghosh/speerNote/middleware"
	"github.com/prithidevghosh/speerNote/model"
	"github.com/prithidevghosh/speerNote/usecase"
	"github.com/prithidevghosh/speerNote/utils"
)

const (
	msgNoteNotFound   = "Note not found."
	msgUserNotFound   = "Shared user not found."
	msgForbidden      = "Permission denied."
	msgAlreadyShared  = "User already shared with this note."
	msgSelfShare      = "A note cannot be shared with its owner."
	msgInvalidRequest = "Invalid request body."
)

// respondError maps a service error onto the notes envelope. invalidInput is
// the message used for ErrInvalidInput, which differs per endpoint.
func respondError(c *gin.Context, logger *zap.Logger, err error, invalidInput string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		utils.BadRequest(c, invalidInput)
	case errors.Is(err, usecase.ErrAlreadyShared):
		utils.BadRequest(c, msgAlreadyShared)
	case errors.Is(err, usecase.ErrUnauthenticated):
		utils.Unauthorized(c)
	case errors.Is(err, usecase.ErrForbidden):
		utils.Forbidden(c, msgForbidden)
	case errors.Is(err, usecase.ErrTargetNotFound):
		utils.NotFound(c, msgUserNotFound)
	case errors.Is(err, usecase.ErrNotFound):
		utils.NotFound(c, msgNoteNotFound)
	default:
		internalError(c, logger, err)
	}
}

// internalError logs the cause and answers with a generic 500.
func internalError(c *gin.Context, logger *zap.Logger, err error) {
	fields := []zap.Field{
		zap.String("request_id", middleware.RequestID(c)),
		zap.String("route", c.FullPath()),
		zap.Error(err),
	}
	if user, ok := middleware.CurrentUser(c); ok {
		fields = append(fields, zap.String("user_id", user.ID.Hex()))
	}
	logger.Error("request failed", fields...)
	utils.TrackError("internal", c.FullPath())
	_ = c.Error(err)
	utils.InternalError(c)
}

// principal is the user AuthMiddleware attached. Routes behind the middleware
// always have one; a missing principal is answered with 401.
func principal(c *gin.Context) (*model.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c)
	}
	return user, ok
}
