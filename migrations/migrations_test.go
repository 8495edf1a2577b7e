package migrations

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&count)
	require.NoError(t, err)
	return count > 0
}

func TestUp_CreatesSchema(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Up(db, "sqlite3"))

	assert.True(t, tableExists(t, db, "domain_records"))
	assert.True(t, tableExists(t, db, "visits"))
}

func TestUp_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Up(db, "sqlite3"))
	require.NoError(t, Up(db, "sqlite3"))
}

func TestDown_DropsSchema(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Up(db, "sqlite3"))

	m, err := New(db, "sqlite3")
	require.NoError(t, err)
	require.NoError(t, m.Down())

	assert.False(t, tableExists(t, db, "domain_records"))
	assert.False(t, tableExists(t, db, "visits"))

	err = m.Down()
	assert.True(t, errors.Is(err, migrate.ErrNoChange))
}

func TestNew_UnsupportedDriver(t *testing.T) {
	db := openTestDB(t)

	_, err := New(db, "mysql")
	assert.Error(t, err)
}
