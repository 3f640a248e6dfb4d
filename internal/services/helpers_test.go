package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/sqrity/sqrity/internal/logging"
	"github.com/sqrity/sqrity/internal/migrations"
	"github.com/sqrity/sqrity/internal/storage"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func openStore(t *testing.T, schema migrations.Schema) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), storage.DSN(":memory:", time.Second), schema, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newAuth(t *testing.T) (AuthService, *sql.DB) {
	t.Helper()
	db := openStore(t, migrations.UsersSchema)
	return NewAuthService(db, logging.Discard()), db
}

func newVault(t *testing.T) (VaultService, *sql.DB) {
	t.Helper()
	db := openStore(t, migrations.VaultSchema)
	return NewVaultService(db, logging.Discard()), db
}

func storedSecret(t *testing.T, db *sql.DB, username string) (salt, hash []byte) {
	t.Helper()
	err := db.QueryRow(`SELECT salt, password_hash FROM users WHERE username = ?`, username).Scan(&salt, &hash)
	require.NoError(t, err)
	return salt, hash
}
