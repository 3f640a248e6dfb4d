package vault

import (
	"context"

	"github.com/sqrity/sqrity/internal/models"
)

// Repository describes the append-only operations of the vault store.
type Repository interface {
	// Insert appends entry and fills in its ID.
	Insert(ctx context.Context, entry *models.VaultEntry) error

	// ListByOwner returns all entries of owner ordered by id.
	ListByOwner(ctx context.Context, owner string) ([]models.VaultEntry, error)
}
