package database

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenDefaultsToSQLiteMemory(t *testing.T) {
	db, err := Open(Config{})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, sqlDB.Ping())
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "oracle"})
	require.Error(t, err)
}

func TestBuildPostgresDSN(t *testing.T) {
	dsn, err := buildPostgresDSN(Config{
		User:     "amateurs",
		Password: "secret",
		Name:     "amateurs",
		Host:     "db.internal",
		Port:     5433,
	})
	require.NoError(t, err)
	require.Contains(t, dsn, "host=db.internal")
	require.Contains(t, dsn, "port=5433")
	require.Contains(t, dsn, "sslmode=disable")
}

func TestBuildPostgresDSNRequiresUser(t *testing.T) {
	_, err := buildPostgresDSN(Config{Name: "amateurs"})
	require.Error(t, err)
}

func TestBuildMySQLDSN(t *testing.T) {
	dsn, err := buildMySQLDSN(Config{
		User:     "amateurs",
		Password: "secret",
		Name:     "amateurs",
	})
	require.NoError(t, err)
	require.Contains(t, dsn, "amateurs:secret@tcp(127.0.0.1:3306)/amateurs")
	require.Contains(t, dsn, "charset=utf8mb4")
}
