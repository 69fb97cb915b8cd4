package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prithidevghosh/speerNote/model"
	"github.com/prithidevghosh/speerNote/repository"
	"github.com/prithidevghosh/speerNote/services"
	"github.com/prithidevghosh/speerNote/utils"
)

// UserStore is the subset of repository.UserRepo the services need.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
}

type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

type Tokens interface {
	Issue(user *model.User) (string, error)
	Verify(token string) (*services.Claims, error)
}

// RevocationStore remembers logged out tokens by their jti.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type AuthService struct {
	Users    UserStore
	Hasher   Hasher
	Tokens   Tokens
	Revoked  RevocationStore // nil disables logout
	validate *validator.Validate
}

func NewAuthService(users UserStore, hasher Hasher, tokens Tokens, revoked RevocationStore) *AuthService {
	return &AuthService{
		Users:    users,
		Hasher:   hasher,
		Tokens:   tokens,
		Revoked:  revoked,
		validate: utils.Validator(),
	}
}

type registration struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,emailshape"`
	Password string `validate:"required"`
}

// Register creates an account. The unique email index decides duplicates, so
// there is no lookup beforehand.
func (svc *AuthService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	input := registration{Name: name, Email: email, Password: password}
	if err := svc.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := svc.Hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: hash,
	}
	if err := svc.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			utils.TrackAuthAttempt("duplicate", "signup")
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	utils.TrackAuthAttempt("success", "signup")
	return user, nil
}

// Login checks the credentials and returns a fresh bearer token.
func (svc *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := svc.Users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.TrackAuthAttempt("unknown_user", "login")
			return "", ErrUnknownUser
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	ok, err := svc.Hasher.Verify(password, user.Password)
	if err != nil {
		return "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		utils.TrackAuthAttempt("bad_credentials", "login")
		return "", ErrBadCredentials
	}

	token, err := svc.Tokens.Issue(user)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	utils.TrackAuthAttempt("success", "login")
	return token, nil
}

// Logout revokes the token described by claims until it expires.
func (svc *AuthService) Logout(ctx context.Context, claims *services.Claims) error {
	if svc.Revoked == nil {
		return ErrRevocationDisabled
	}
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return ErrUnauthenticated
	}

	if err := svc.Revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	utils.TrackAuthAttempt("success", "logout")
	return nil
}

// Authenticate resolves a bearer token to its user. Every reason to reject
// the token is reported as ErrUnauthenticated; other errors are store
// failures.
func (svc *AuthService) Authenticate(ctx context.Context, token string) (*model.User, *services.Claims, error) {
	if token == "" {
		return nil, nil, ErrUnauthenticated
	}

	claims, err := svc.Tokens.Verify(token)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	if svc.Revoked != nil && claims.ID != "" {
		revoked, err := svc.Revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return nil, nil, fmt.Errorf("%w: token revoked", ErrUnauthenticated)
		}
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: malformed user id", ErrUnauthenticated)
	}

	user, err := svc.Users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: user no longer exists", ErrUnauthenticated)
		}
		return nil, nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	return user, claims, nil
}
