// Package models defines the rows owned by the identity and vault stores.
package models

// User is one registered account. Salt and PasswordHash are immutable once
// the row is written.
type User struct {
	ID           int64
	Username     string
	Salt         []byte
	PasswordHash []byte
}
