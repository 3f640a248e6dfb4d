// Package users provides the persistence layer of the identity store.
//
// # Overview
//
// The package defines a Repository interface for creating and looking up
// User rows (see internal/models). A SQLite-backed implementation
// (SQLiteRepository) persists data using a dbx.DBTX (either *sql.DB or *sql.Tx).
//
// # Data Model
//
// Each user stores a unique, case-sensitive username, a random salt and the
// PBKDF2 hash of the password. Rows are never updated or deleted.
//
// # Errors
//
//   - Create wraps a UNIQUE violation so that dbx.IsUniqueViolation still
//     matches it; callers translate it into common.ErrDuplicateUsername.
//   - GetByUsername returns common.ErrNotFound when no row matches.
//
// Typical Usage
//
//	repo := users.NewSQLiteRepository(db)
//	u, _ := repo.Create(ctx, &models.User{Username: "alice", Salt: salt, PasswordHash: hash})
//	found, _ := repo.GetByUsername(ctx, "alice")
package users
