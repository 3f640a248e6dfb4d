// Package migrations embeds the SQLite schema of both stores and applies it
// with goose. Each schema keeps its own version table, so the users and
// vault schemas may share one database file.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
	"github.com/sqrity/sqrity/internal/logging"
)

//go:embed users/*.sql vault/*.sql
var Migrations embed.FS

// Schema names a migration set: its directory inside Migrations and the
// goose version table that tracks it.
type Schema struct {
	Dir          string
	VersionTable string
}

var (
	UsersSchema = Schema{Dir: "users", VersionTable: "users_schema_version"}
	VaultSchema = Schema{Dir: "vault", VersionTable: "vault_schema_version"}
)

// goose keeps its settings in package globals
var gooseMu sync.Mutex

// Up applies every pending migration of schema to db. Running it against an
// up-to-date database is a no-op.
func Up(ctx context.Context, db *sql.DB, schema Schema, log logging.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(Migrations)
	goose.SetTableName(schema.VersionTable)
	goose.SetLogger(&gooseLogger{log: log.With("schema", schema.Dir)})
	defer goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	err := recoverFatal(func() error {
		return goose.UpContext(ctx, db, schema.Dir)
	})
	if err != nil {
		return fmt.Errorf("failed to migrate %s schema: %w", schema.Dir, err)
	}
	return nil
}

// Version reports the applied migration version of schema.
func Version(ctx context.Context, db *sql.DB, schema Schema) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetTableName(schema.VersionTable)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return 0, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.GetDBVersionContext(ctx, db)
}

// gooseLogger routes goose output into the structured logger at debug level.
// goose holds it in a package global, so it carries no request context.
type gooseLogger struct {
	log logging.Logger
}

func (g *gooseLogger) Printf(format string, v ...any) {
	g.log.Debug(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf unwinds with a gooseFatal that recoverFatal turns into an error.
func (g *gooseLogger) Fatalf(format string, v ...any) {
	msg := strings.TrimSpace(fmt.Sprintf(format, v...))
	g.log.Error(context.Background(), msg)
	panic(gooseFatal(msg))
}

type gooseFatal string

// recoverFatal runs fn and converts a gooseLogger.Fatalf panic into an
// error. Other panics propagate.
func recoverFatal(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			msg, ok := r.(gooseFatal)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("goose: %s", string(msg))
		}
	}()
	return fn()
}
