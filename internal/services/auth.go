package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sqrity/sqrity/internal/common"
	"github.com/sqrity/sqrity/internal/cryptox"
	"github.com/sqrity/sqrity/internal/dbx"
	"github.com/sqrity/sqrity/internal/logging"
	"github.com/sqrity/sqrity/internal/models"
	"github.com/sqrity/sqrity/internal/repositories/users"
)

// AuthService defines the identity store operations.
//
// Contract:
//   - Register: create a user with a fresh salt and PBKDF2 hash.
//   - Authenticate: true only when the password matches; an unknown
//     username is indistinguishable from a wrong password.
//   - Login: Authenticate, returning the confirmed username or
//     common.ErrInvalidCredentials.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) error
	Authenticate(ctx context.Context, username string, password []byte) (bool, error)
	Login(ctx context.Context, username string, password []byte) (string, error)
}

// authService is the concrete AuthService backed by the users database.
type authService struct {
	db  *sql.DB
	log logging.Logger
}

// NewAuthService constructs an AuthService bound to the users database.
func NewAuthService(db *sql.DB, log logging.Logger) AuthService {
	return &authService{db: db, log: log.With("component", "auth")}
}

// Register validates input, derives the hash outside the transaction and
// inserts the row inside one. A username taken by a concurrent writer is
// caught by the UNIQUE constraint and reported as common.ErrDuplicateUsername.
func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	if username == "" || len(password) == 0 {
		return common.ErrInvalidInput
	}

	salt := cryptox.NewSalt()
	hash := cryptox.HashPassword(password, salt)

	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := users.NewSQLiteRepository(tx)

		_, err := repo.GetByUsername(ctx, username)
		switch {
		case err == nil:
			return common.ErrDuplicateUsername
		case !errors.Is(err, common.ErrNotFound):
			return err
		}

		_, err = repo.Create(ctx, &models.User{Username: username, Salt: salt, PasswordHash: hash})
		if dbx.IsUniqueViolation(err) {
			return common.ErrDuplicateUsername
		}
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			a.log.Info(ctx, "registration rejected", "username", username, "reason", "duplicate")
		}
		return storageError(ctx, a.log, "register", err)
	}

	a.log.Info(ctx, "user registered", "username", username)
	return nil
}

func (a *authService) Authenticate(ctx context.Context, username string, password []byte) (bool, error) {
	if username == "" || len(password) == 0 {
		return false, common.ErrInvalidInput
	}

	user, err := users.NewSQLiteRepository(a.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			a.log.Debug(ctx, "authentication failed", "username", username)
			return false, nil
		}
		return false, storageError(ctx, a.log, "authenticate", err)
	}

	if !cryptox.VerifyPassword(password, user.Salt, user.PasswordHash) {
		a.log.Debug(ctx, "authentication failed", "username", username)
		return false, nil
	}
	return true, nil
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (string, error) {
	ok, err := a.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	if !ok {
		a.log.Warn(ctx, "login failed", "username", username)
		return "", common.ErrInvalidCredentials
	}
	a.log.Info(ctx, "login succeeded", "username", username)
	return username, nil
}
