package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrUnknownUser     = errors.New("unregistered user")
	ErrBadCredentials  = errors.New("wrong password")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrAlreadyShared   = errors.New("note already shared with user")

	// ErrTargetNotFound is the NotFound reported when the user a note is
	// being shared with does not exist.
	ErrTargetNotFound = fmt.Errorf("%w: shared user", ErrNotFound)

	// ErrRevocationDisabled is returned by Logout when no revocation store
	// was configured.
	ErrRevocationDisabled = errors.New("token revocation is not configured")
)
