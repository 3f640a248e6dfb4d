package users

import (
	"context"

	"github.com/sqrity/sqrity/internal/models"
)

// Repository describes the operations the identity store needs on users.
type Repository interface {
	// Create inserts user and fills in its ID.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername returns the user with exactly this username.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
