package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sqrity/sqrity/internal/common"
	"github.com/sqrity/sqrity/internal/dbx"
	"github.com/sqrity/sqrity/internal/logging"
	"github.com/sqrity/sqrity/internal/models"
	"github.com/sqrity/sqrity/internal/repositories/vault"
)

// VaultService defines the vault store operations. The caller is trusted
// to pass the username confirmed by AuthService.Login.
type VaultService interface {
	Save(ctx context.Context, owner, appName, secret string) error
	ListByOwner(ctx context.Context, owner string) ([]models.VaultEntry, error)
}

type vaultService struct {
	db  *sql.DB
	log logging.Logger
}

// NewVaultService constructs a VaultService bound to the vault database.
func NewVaultService(db *sql.DB, log logging.Logger) VaultService {
	return &vaultService{db: db, log: log.With("component", "vault")}
}

// Save appends a new entry. appName and secret must contain something other
// than whitespace; they are stored exactly as given. Entries for the same
// app are not merged.
func (v *vaultService) Save(ctx context.Context, owner, appName, secret string) error {
	if strings.TrimSpace(appName) == "" || strings.TrimSpace(secret) == "" {
		return common.ErrInvalidInput
	}

	err := dbx.WithTx(ctx, v.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return vault.NewSQLiteRepository(tx).Insert(ctx, &models.VaultEntry{
			OwnerUsername: owner,
			AppName:       appName,
			Password:      secret,
		})
	})
	if err != nil {
		return storageError(ctx, v.log, "save", err)
	}

	v.log.Info(ctx, "secret saved", "owner", owner, "app", appName)
	return nil
}

// ListByOwner returns an empty slice, not an error, for owners without entries.
func (v *vaultService) ListByOwner(ctx context.Context, owner string) ([]models.VaultEntry, error) {
	entries, err := vault.NewSQLiteRepository(v.db).ListByOwner(ctx, owner)
	if err != nil {
		return nil, storageError(ctx, v.log, "list", err)
	}
	return entries, nil
}
