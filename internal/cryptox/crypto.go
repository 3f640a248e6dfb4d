// Package cryptox holds the password hashing primitives of the identity
// store: salt generation, PBKDF2-HMAC-SHA256 derivation and constant-time
// verification.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/sqrity/sqrity/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// Iterations is the PBKDF2 work factor stored hashes are derived with.
	// Changing it invalidates every existing hash.
	Iterations = 100_000

	// KeyLen equals the SHA-256 digest size.
	KeyLen = sha256.Size
)

// NewSalt returns a fresh random salt of common.SaltSize bytes.
func NewSalt() []byte {
	return common.GenerateRandByteArray(common.SaltSize)
}

// HashPassword derives the stored password hash for (password, salt).
// The result is deterministic for equal inputs.
//
// Example:
//
//	salt := cryptox.NewSalt()
//	hash := cryptox.HashPassword([]byte("hunter2"), salt)
//	// persist salt and hash
func HashPassword(password, salt []byte) []byte {
	return deriveKey(password, salt, Iterations)
}

// VerifyPassword re-derives the hash from the candidate password and the
// stored salt and compares it with the stored hash in constant time.
func VerifyPassword(candidate, salt, storedHash []byte) bool {
	derived := deriveKey(candidate, salt, Iterations)
	defer common.WipeByteArray(derived)
	return subtle.ConstantTimeCompare(derived, storedHash) == 1
}

func deriveKey(password, salt []byte, iterations int) []byte {
	return pbkdf2.Key(password, salt, iterations, KeyLen, sha256.New)
}
