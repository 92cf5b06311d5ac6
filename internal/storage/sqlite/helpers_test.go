package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/healthtracker/internal/models"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func createTestUser(t *testing.T, store *SQLiteStore, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func countRows(t *testing.T, store *SQLiteStore, table string) int {
	t.Helper()
	var n int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
