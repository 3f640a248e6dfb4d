// Package storage opens the SQLite files behind the identity and vault
// stores and brings their schemas up to date.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sqrity/sqrity/internal/common"
	"github.com/sqrity/sqrity/internal/logging"
	"github.com/sqrity/sqrity/internal/migrations"

	_ "modernc.org/sqlite"
)

// Databases holds one handle per store. Both may point at the same file.
type Databases struct {
	Users *sql.DB
	Vault *sql.DB
}

// DSN builds a modernc sqlite DSN for path. Write transactions take the
// RESERVED lock at BEGIN and wait up to busyTimeout for other processes
// holding the file, so two registrations of one name from separate
// processes end in a UNIQUE check instead of SQLITE_BUSY.
func DSN(path string, busyTimeout time.Duration) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=busy_timeout(%d)&_txlock=immediate", path, sep, busyTimeout.Milliseconds())
}

// Open opens the SQLite database at dsn with a single connection, checks it
// is reachable and applies schema. Any failure is reported as
// common.ErrStorageUnavailable.
func Open(ctx context.Context, dsn string, schema migrations.Schema, log logging.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", common.ErrStorageUnavailable, dsn, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", common.ErrStorageUnavailable, dsn, err)
	}

	if err := migrations.Up(ctx, db, schema, log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	log.Debug(ctx, "database ready", "dsn", dsn, "schema", schema.Dir)
	return db, nil
}

// InitDatabases opens the users and vault databases.
func InitDatabases(ctx context.Context, usersDSN, vaultDSN string, log logging.Logger) (*Databases, error) {
	users, err := Open(ctx, usersDSN, migrations.UsersSchema, log)
	if err != nil {
		return nil, err
	}

	vault, err := Open(ctx, vaultDSN, migrations.VaultSchema, log)
	if err != nil {
		_ = users.Close()
		return nil, err
	}

	return &Databases{Users: users, Vault: vault}, nil
}

// Close closes both handles.
func (d *Databases) Close() error {
	return errors.Join(d.Users.Close(), d.Vault.Close())
}
