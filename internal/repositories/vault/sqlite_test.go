package vault

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
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
CREATE TABLE vault (
  id             INTEGER PRIMARY KEY AUTOINCREMENT,
  owner_username TEXT NOT NULL,
  app_name       TEXT NOT NULL,
  password       TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestInsertAndListByOwner(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	e1 := &models.VaultEntry{OwnerUsername: "alice", AppName: "gmail", Password: "p@ss"}
	require.NoError(t, r.Insert(ctx, e1))
	require.NotZero(t, e1.ID)

	require.NoError(t, r.Insert(ctx, &models.VaultEntry{OwnerUsername: "bob", AppName: "github", Password: "b0b"}))
	require.NoError(t, r.Insert(ctx, &models.VaultEntry{OwnerUsername: "alice", AppName: "gmail", Password: "second"}))

	list, err := r.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, e1.ID, list[0].ID)
	assert.Equal(t, "gmail", list[0].AppName)
	assert.Equal(t, "p@ss", list[0].Password)
	assert.Equal(t, "gmail", list[1].AppName)
	assert.Equal(t, "second", list[1].Password)
	assert.Less(t, list[0].ID, list[1].ID)
	for _, e := range list {
		assert.Equal(t, "alice", e.OwnerUsername)
	}
}

func TestListByOwner_EmptyIsNotNil(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	list, err := r.ListByOwner(context.Background(), "nobody")
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestInsert_StoresVerbatim(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	secret := "  spaced 'quoted' \"double\" ✓  "
	require.NoError(t, r.Insert(ctx, &models.VaultEntry{OwnerUsername: "alice", AppName: " bank ", Password: secret}))

	var raw string
	require.NoError(t, db.QueryRow(`SELECT password FROM vault WHERE owner_username = 'alice'`).Scan(&raw))
	assert.Equal(t, secret, raw)

	list, err := r.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, " bank ", list[0].AppName)
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

func TestInsert_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO vault \(owner_username, app_name, password\) VALUES \(\?, \?, \?\)`).
		WithArgs("alice", "gmail", "p@ss").
		WillReturnError(errors.New("database or disk is full"))

	err := repo.Insert(context.Background(), &models.VaultEntry{OwnerUsername: "alice", AppName: "gmail", Password: "p@ss"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to insert vault entry")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByOwner_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, owner_username, app_name, password FROM vault WHERE owner_username = \? ORDER BY id`).
		WithArgs("alice").
		WillReturnError(errors.New("no such table: vault"))

	_, err := repo.ListByOwner(context.Background(), "alice")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no such table")
}

func TestListByOwner_RowError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "owner_username", "app_name", "password"}).
		AddRow(1, "alice", "gmail", "p@ss").
		AddRow(2, "alice", "bank", "b4nk").
		RowError(1, errors.New("disk I/O error"))
	mock.ExpectQuery(`SELECT .* FROM vault`).WithArgs("alice").WillReturnRows(rows)

	_, err := repo.ListByOwner(context.Background(), "alice")
	require.Error(t, err)
	require.Contains(t, err.Error(), "disk I/O error")
}
