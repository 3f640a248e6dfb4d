package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sqrity/sqrity/internal/common"
	"github.com/sqrity/sqrity/internal/dbx"
	"github.com/sqrity/sqrity/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE users (
  id            INTEGER PRIMARY KEY AUTOINCREMENT,
  username      TEXT NOT NULL UNIQUE,
  salt          BLOB NOT NULL,
  password_hash BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestCreateAndGetByUsername(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	u1, err := r.Create(ctx, &models.User{Username: "alice", Salt: []byte("salt-a"), PasswordHash: []byte("hash-a")})
	require.NoError(t, err)
	u2, err := r.Create(ctx, &models.User{Username: "bob", Salt: []byte("salt-b"), PasswordHash: []byte("hash-b")})
	require.NoError(t, err)

	assert.Greater(t, u2.ID, u1.ID, "ids must grow")

	got, err := r.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u1.ID, got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, []byte("salt-a"), got.Salt)
	assert.Equal(t, []byte("hash-a"), got.PasswordHash)
}

func TestGetByUsername_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.GetByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetByUsername_CaseSensitive(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := r.Create(ctx, &models.User{Username: "Alice", Salt: []byte("s"), PasswordHash: []byte("h")})
	require.NoError(t, err)

	_, err = r.GetByUsername(ctx, "alice")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestCreate_DuplicateIsUniqueViolation(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := r.Create(ctx, &models.User{Username: "alice", Salt: []byte("s1"), PasswordHash: []byte("h1")})
	require.NoError(t, err)

	_, err = r.Create(ctx, &models.User{Username: "alice", Salt: []byte("s2"), PasswordHash: []byte("h2")})
	require.Error(t, err)
	require.True(t, dbx.IsUniqueViolation(err))

	// the first row is untouched
	got, err := r.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []byte("s1"), got.Salt)
	assert.Equal(t, []byte("h1"), got.PasswordHash)
}

// ---- driver failures (sqlmock) ----

func newRepoWithMock(t *testing.T) (*SQLiteRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSQLiteRepository(db), mock, db
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+users\s*\(username,\s*salt,\s*password_hash\)\s*VALUES\s*\(\?,\s*\?,\s*\?\)$`
	mock.ExpectExec(q).
		WithArgs("alice", []byte("salt"), []byte("hash")).
		WillReturnError(errors.New("disk I/O error"))

	_, err := repo.Create(context.Background(), &models.User{Username: "alice", Salt: []byte("salt"), PasswordHash: []byte("hash")})
	if err == nil || !regexp.MustCompile(`failed to insert user: .*disk I/O error`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_LastInsertIdError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnResult(sqlmock.NewErrorResult(errors.New("no id")))

	_, err := repo.Create(context.Background(), &models.User{Username: "alice", Salt: []byte("s"), PasswordHash: []byte("h")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to get inserted user id")
}

func TestGetByUsername_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, username, salt, password_hash FROM users WHERE username = \?`).
		WithArgs("alice").
		WillReturnError(errors.New("database is locked"))

	_, err := repo.GetByUsername(context.Background(), "alice")
	require.Error(t, err)
	require.NotErrorIs(t, err, common.ErrNotFound)
	require.Contains(t, err.Error(), "database is locked")
	require.NoError(t, mock.ExpectationsWereMet())
}
