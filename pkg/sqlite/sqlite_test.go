package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteDB_AppliesMigrationsOnce(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "crowd.db")

	db, err := NewSQLiteDB(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// повторное открытие не должно применять миграции заново
	db, err = NewSQLiteDB(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	var version int64
	var dirty bool
	require.NoError(t, db.QueryRow("SELECT version, dirty FROM schema_migrations").Scan(&version, &dirty))
	assert.Equal(t, int64(2), version)
	assert.False(t, dirty)

	for _, table := range []string{"participants", "location_pings"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestNewSQLiteDB_InMemoryKeepsSchema(t *testing.T) {
	db, err := NewSQLiteDB(context.Background(), ":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO participants (id, name, phone, registered_at) VALUES ('a', 'Asha', '9000000001', 0)`)
	require.NoError(t, err)

	// номер телефона уникален
	_, err = db.Exec(`INSERT INTO participants (id, name, phone, registered_at) VALUES ('b', 'Asha', '9000000001', 0)`)
	assert.Error(t, err)
}
