// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/healthtracker/internal/models"
)

var (
	// ErrDuplicateUser is returned when a username or email is already registered.
	ErrDuplicateUser = errors.New("user with this email or username already exists")

	// ErrUnknownUser is returned when a row references a user that does not exist.
	ErrUnknownUser = errors.New("referenced user does not exist")
)

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser persists a new user and populates user.ID and user.CreatedAt.
	// Returns ErrDuplicateUser if the username or email is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns nil, nil when no user has the given email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns nil, nil when the user does not exist.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// MeasurementStore persists measurement rows and calculator results.
// Rows are append-only. List methods return the most recent rows first;
// a limit <= 0 returns every row.
type MeasurementStore interface {
	CreateBasicMeasurement(ctx context.Context, m *models.BasicMeasurement) error
	CreateHealthMeasurement(ctx context.Context, m *models.HealthMeasurement) error
	CreateActivityMeasurement(ctx context.Context, m *models.ActivityMeasurement) error
	CreateCalculatorResult(ctx context.Context, r *models.CalculatorResult) error

	ListBasicMeasurements(ctx context.Context, userID int64, limit int) ([]*models.BasicMeasurement, error)
	ListHealthMeasurements(ctx context.Context, userID int64, limit int) ([]*models.HealthMeasurement, error)
	ListActivityMeasurements(ctx context.Context, userID int64, limit int) ([]*models.ActivityMeasurement, error)
	ListCalculatorResults(ctx context.Context, userID int64, limit int) ([]*models.CalculatorResult, error)

	// Series returns chart points for one metric, oldest first.
	// With limit > 0 only the most recent limit points are returned.
	Series(ctx context.Context, userID int64, series Series, limit int) ([]Point, error)
}

// Store defines the full storage surface used by the application.
// This abstraction allows swapping storage backends without changing
// the service layer.
type Store interface {
	UserStore
	MeasurementStore

	// Close releases any resources held by the store.
	Close() error
}
