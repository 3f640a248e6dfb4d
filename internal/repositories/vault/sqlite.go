package vault

import (
	"context"
	"fmt"

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

// Insert stores the entry verbatim.
func (r *SQLiteRepository) Insert(ctx context.Context, e *models.VaultEntry) error {
	query := `INSERT INTO vault (owner_username, app_name, password) VALUES (?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, e.OwnerUsername, e.AppName, e.Password)
	if err != nil {
		return fmt.Errorf("failed to insert vault entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted entry id: %w", err)
	}
	e.ID = id
	return nil
}

// ListByOwner never returns a nil slice on success.
func (r *SQLiteRepository) ListByOwner(ctx context.Context, owner string) ([]models.VaultEntry, error) {
	query := `SELECT id, owner_username, app_name, password FROM vault WHERE owner_username = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to select vault entries: %w", err)
	}
	defer rows.Close()

	result := []models.VaultEntry{}
	for rows.Next() {
		var item models.VaultEntry
		if err := rows.Scan(&item.ID, &item.OwnerUsername, &item.AppName, &item.Password); err != nil {
			return nil, fmt.Errorf("failed to scan vault entry: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vault entries: %w", err)
	}
	return result, nil
}
