// Package services contains the application services of the credential
// and vault store.
//
//   - AuthService is the identity store: Register, Authenticate and Login
//     over the users database.
//   - VaultService is the vault store: Save and ListByOwner over the vault
//     database.
//
// Both report failures as the sentinel errors of internal/common. Anything
// that is not a domain error comes back as common.ErrStorageUnavailable;
// the services never retry.
package services
