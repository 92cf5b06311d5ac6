package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/healthtracker/internal/auth"
	"github.com/mmynk/healthtracker/internal/metrics"
	"github.com/mmynk/healthtracker/internal/models"
)

// AuthService registers accounts and issues session tokens.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	metrics       *metrics.Manager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, m *metrics.Manager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		metrics:       m,
		logger:        logger,
	}
}

// Register creates a new user account. Rejections wrap one of
// auth.ErrMissingFields, auth.ErrWeakPassword, auth.ErrLongPassword or
// auth.ErrDuplicateUser.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	user, err := s.authenticator.Register(ctx, username, email, password)
	if err != nil {
		if isRegistrationRejection(err) {
			s.metrics.CounterRegistrations.WithLabelValues(metrics.OutcomeInvalid).Inc()
			s.logger.Info("Registration rejected", "email", email, "reason", err)
			return nil, err
		}
		s.metrics.CounterRegistrations.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("register: %w", err)
	}

	s.metrics.CounterRegistrations.WithLabelValues(metrics.OutcomeOK).Inc()
	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login authenticates a user and returns a signed session token.
// An unknown email yields auth.ErrUserNotFound, a wrong password
// auth.ErrBadPassword.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) || errors.Is(err, auth.ErrBadPassword) {
			s.metrics.CounterLogins.WithLabelValues(metrics.OutcomeInvalid).Inc()
			s.logger.Warn("Login failed", "email", email, "error", err)
			return "", nil, err
		}
		s.metrics.CounterLogins.WithLabelValues(metrics.OutcomeError).Inc()
		return "", nil, fmt.Errorf("login: %w", err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.metrics.CounterLogins.WithLabelValues(metrics.OutcomeError).Inc()
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return "", nil, fmt.Errorf("login: %w", err)
	}

	s.metrics.CounterLogins.WithLabelValues(metrics.OutcomeOK).Inc()
	s.logger.Info("User logged in successfully", "user_id", user.ID, "email", user.Email)
	return token, user, nil
}

func isRegistrationRejection(err error) bool {
	return errors.Is(err, auth.ErrMissingFields) ||
		errors.Is(err, auth.ErrWeakPassword) ||
		errors.Is(err, auth.ErrLongPassword) ||
		errors.Is(err, auth.ErrDuplicateUser)
}
