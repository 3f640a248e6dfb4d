// Package common defines shared constants and sentinel errors used across
// the identity store, the vault store and the shell. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation errors.
	ErrInvalidInput = errors.New("invalid input")

	// Identity errors. ErrInvalidCredentials never says whether the
	// username exists.
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Generator errors.
	ErrEmptyAlphabet = errors.New("no character classes selected")

	// Storage errors (file locked, disk full, schema mismatch, closed handle).
	ErrStorageUnavailable = errors.New("storage unavailable")
)
