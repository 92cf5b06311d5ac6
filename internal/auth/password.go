package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/healthtracker/internal/models"
	"github.com/mmynk/healthtracker/internal/storage"
)

const (
	// MinPasswordLength is the shortest password accepted at registration, in characters.
	MinPasswordLength = 8

	// MaxPasswordLength is bcrypt's input limit in bytes.
	MaxPasswordLength = 72
)

var (
	ErrMissingFields = errors.New("username, email and password are required")
	ErrWeakPassword  = errors.New("password must be at least 8 characters")
	ErrLongPassword  = errors.New("password must be at most 72 bytes")
	ErrDuplicateUser = errors.New("user with this email or username already exists")
	ErrUserNotFound  = errors.New("user does not exist")
	ErrBadPassword   = errors.New("invalid password")
)

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage storage.UserStore
	cost    int
}

// NewPasswordAuthenticator creates a new password-based authenticator.
// A cost of 0 selects bcrypt.DefaultCost.
func NewPasswordAuthenticator(store storage.UserStore, cost int) *PasswordAuthenticator {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &PasswordAuthenticator{
		storage: store,
		cost:    cost,
	}
}

var _ Authenticator = (*PasswordAuthenticator)(nil)

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if utf8.RuneCountInString(credential) < MinPasswordLength {
		return ErrWeakPassword
	}
	// bcrypt reads at most 72 bytes.
	if len(credential) > MaxPasswordLength {
		return ErrLongPassword
	}
	return nil
}

// Register creates a new user account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, username, email, credential string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || credential == "" {
		return nil, ErrMissingFields
	}

	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(credential), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	// The unique constraints decide registration races; no pre-check needed.
	if err := a.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicateUser) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the email and password, returning the user if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*models.User, error) {
	user, err := a.storage.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrBadPassword
	}

	return user, nil
}
