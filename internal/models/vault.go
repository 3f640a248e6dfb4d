package models

// VaultEntry is one stored secret. OwnerUsername refers to User.Username
// logically only; nothing enforces that the user exists.
type VaultEntry struct {
	ID            int64
	OwnerUsername string
	AppName       string
	Password      string
}
