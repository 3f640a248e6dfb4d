package common

import "crypto/rand"

// SaltSize is the number of random bytes generated for every new user.
const SaltSize = 16

// GenerateRandByteArray returns size bytes read from crypto/rand.
// It panics if the system random source fails, which leaves no safe way
// to continue creating credentials.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Use it for passwords read from the terminal once they are no longer needed.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
