package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prithidevghosh/speerNote/model"
	"github.com/prithidevghosh/speerNote/services"
	"github.com/prithidevghosh/speerNote/usecase"
	"github.com/prithidevghosh/speerNote/utils"
)

const (
	userKey   = "user"
	claimsKey = "claims"
)

// Authenticator resolves a bearer token to the user it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, *services.Claims, error)
}

// AuthMiddleware rejects requests without a valid bearer token and attaches
// the resolved user to the context for the handlers behind it.
func AuthMiddleware(auth Authenticator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			utils.TrackAuthAttempt("missing_token", "token")
			utils.Unauthorized(c)
			return
		}

		user, claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, usecase.ErrUnauthenticated) {
				utils.TrackAuthAttempt("failure", "token")
				logger.Debug("rejected bearer token",
					zap.String("request_id", RequestID(c)),
					zap.Error(err),
				)
				utils.Unauthorized(c)
				return
			}

			utils.TrackError("auth", "authenticate_failed")
			logger.Error("failed to authenticate request",
				zap.String("request_id", RequestID(c)),
				zap.Error(err),
			)
			utils.InternalError(c)
			return
		}

		c.Set(userKey, user)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CurrentUser returns the principal set by AuthMiddleware.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(userKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok && user != nil
}

func CurrentClaims(c *gin.Context) (*services.Claims, bool) {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*services.Claims)
	return claims, ok && claims != nil
}
