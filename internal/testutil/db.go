// Package testutil provides test helpers for database setup.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schoolhub/registrar/internal/db"
)

// NewTestDB creates a file-backed SQLite database under a per-test temp
// directory with the full schema applied. It is closed when the test
// completes.
func NewTestDB(t *testing.T) *db.SQLiteDB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.Open(dbPath)
	require.NoError(t, err, "Failed to open test database")
	t.Cleanup(database.Close)

	err = database.InitSchema(context.Background())
	require.NoError(t, err, "Failed to apply schema")
	return database
}
