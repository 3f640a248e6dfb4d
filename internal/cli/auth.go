package cli

import (
	"context"
	"errors"

	"github.com/sqrity/sqrity/internal/common"
)

func (a *App) readCredentials() (string, []byte, error) {
	userName, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := GetPassword(a.reader, a.in, a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

// Register prompts for a username and password and creates the account.
func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		a.println("Error:", err)
		return err
	}
	defer common.WipeByteArray(password)

	err = a.authService.Register(ctx, userName, password)
	switch {
	case err == nil:
		a.println("Registration successful! You can now login.")
	case errors.Is(err, common.ErrInvalidInput):
		a.println("Please enter both username and password.")
	case errors.Is(err, common.ErrDuplicateUsername):
		a.println("Username already taken.")
	default:
		a.println("Database error:", err)
	}
	return err
}

// Login authenticates and, on success, makes the username the owner of
// every following save and list.
func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		a.println("Error:", err)
		return err
	}
	defer common.WipeByteArray(password)

	confirmed, err := a.authService.Login(ctx, userName, password)
	switch {
	case err == nil:
		a.userName = confirmed
		a.lastGenerated = ""
		a.println("Login successful!")
	case errors.Is(err, common.ErrInvalidInput):
		a.println("Please enter both username and password.")
	case errors.Is(err, common.ErrInvalidCredentials):
		a.println("Invalid username or password.")
	default:
		a.println("Database error:", err)
	}
	return err
}

// Logout forgets the current user and the last generated secret.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.println("Not logged in.")
		return nil
	}
	a.log.Info(ctx, "logout", "username", a.userName)
	a.userName = ""
	a.lastGenerated = ""
	a.println("Logged out.")
	return nil
}
