package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sqrity/sqrity/internal/common"
	"github.com/sqrity/sqrity/internal/dbx"
	"github.com/sqrity/sqrity/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `INSERT INTO users (username, salt, password_hash) VALUES (?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, user.Username, user.Salt, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted user id: %w", err)
	}
	user.ID = id

	return user, nil
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT id, username, salt, password_hash FROM users WHERE username = ?`

	u := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.Salt, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select user: %w", err)
	}

	return u, nil
}
