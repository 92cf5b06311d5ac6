package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/healthtracker/internal/models"
	"github.com/mmynk/healthtracker/internal/storage"
)

// memoryUsers is an in-memory storage.UserStore.
type memoryUsers struct {
	mu     sync.Mutex
	nextID int64
	users  []*models.User
	err    error
}

func (m *memoryUsers) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, u := range m.users {
		if u.Email == user.Email || u.Username == user.Username {
			return storage.ErrDuplicateUser
		}
	}
	m.nextID++
	user.ID = m.nextID
	stored := *user
	m.users = append(m.users, &stored)
	return nil
}

func (m *memoryUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memoryUsers) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			found := *u
			return &found, nil
		}
	}
	return nil, nil
}

func newTestAuthenticator() (*PasswordAuthenticator, *memoryUsers) {
	store := &memoryUsers{}
	return NewPasswordAuthenticator(store, bcrypt.MinCost), store
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes password", func(t *testing.T) {
		a, store := newTestAuthenticator()
		user, err := a.Register(ctx, "alice", "alice@example.com", "password123")
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
		assert.Len(t, store.users, 1)
	})

	t.Run("rejects empty fields", func(t *testing.T) {
		a, store := newTestAuthenticator()
		for _, in := range [][3]string{
			{"", "a@example.com", "password123"},
			{"alice", "  ", "password123"},
			{"alice", "a@example.com", ""},
		} {
			_, err := a.Register(ctx, in[0], in[1], in[2])
			assert.ErrorIs(t, err, ErrMissingFields)
		}
		assert.Empty(t, store.users)
	})

	t.Run("rejects short password", func(t *testing.T) {
		a, store := newTestAuthenticator()
		_, err := a.Register(ctx, "alice", "alice@example.com", "1234567")
		assert.ErrorIs(t, err, ErrWeakPassword)
		assert.Empty(t, store.users)
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		a, store := newTestAuthenticator()
		_, err := a.Register(ctx, "olena", "olena@example.com", "пароль")
		assert.ErrorIs(t, err, ErrWeakPassword)
		assert.Empty(t, store.users)

		_, err = a.Register(ctx, "olena", "olena@example.com", "надійнийпароль")
		require.NoError(t, err)
		assert.Len(t, store.users, 1)
	})

	t.Run("rejects overlong password", func(t *testing.T) {
		a, _ := newTestAuthenticator()
		_, err := a.Register(ctx, "alice", "alice@example.com", strings.Repeat("x", 73))
		assert.ErrorIs(t, err, ErrLongPassword)
	})

	t.Run("same email twice yields duplicate", func(t *testing.T) {
		a, store := newTestAuthenticator()
		_, err := a.Register(ctx, "alice", "alice@example.com", "password123")
		require.NoError(t, err)
		_, err = a.Register(ctx, "alice2", "alice@example.com", "password456")
		assert.ErrorIs(t, err, ErrDuplicateUser)
		assert.Len(t, store.users, 1)
	})

	t.Run("storage failure is wrapped", func(t *testing.T) {
		a, store := newTestAuthenticator()
		store.err = errors.New("disk full")
		_, err := a.Register(ctx, "alice", "alice@example.com", "password123")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrDuplicateUser)
		assert.Contains(t, err.Error(), "disk full")
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	a, store := newTestAuthenticator()
	registered, err := a.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		user, err := a.Authenticate(ctx, "alice@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "alice@example.com", "wrongpass")
		assert.ErrorIs(t, err, ErrBadPassword)
		assert.NotErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "nobody@example.com", "password123")
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.NotErrorIs(t, err, ErrBadPassword)
	})

	t.Run("storage failure", func(t *testing.T) {
		store.err = errors.New("connection reset")
		defer func() { store.err = nil }()
		_, err := a.Authenticate(ctx, "alice@example.com", "password123")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUserNotFound)
		assert.NotErrorIs(t, err, ErrBadPassword)
	})
}
