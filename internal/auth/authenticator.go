package auth

import (
	"context"

	"github.com/mmynk/healthtracker/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, passkeys, OAuth, etc.)
// without changing the web layer.
type Authenticator interface {
	// Register creates a new user account with the given username, email and credential.
	// Returns ErrMissingFields, ErrWeakPassword or ErrDuplicateUser on rejection.
	Register(ctx context.Context, username, email, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	// Returns ErrUserNotFound for an unknown email and ErrBadPassword for a
	// credential mismatch.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
