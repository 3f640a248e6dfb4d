// Package generator produces random candidate secrets for the vault.
//
// Characters are drawn independently and uniformly from the union of the
// enabled character classes. Nothing guarantees that every enabled class
// shows up in a given output.
package generator

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/sqrity/sqrity/internal/common"
)

const (
	// DefaultLength is used when the caller does not constrain the length.
	DefaultLength = 14
	// FallbackLength replaces explicit lengths outside [MinLength, MaxLength].
	FallbackLength = 12

	MinLength = 4
	MaxLength = 128
)

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()_+-={}[]|:;<>,.?/"
)

// Charset selects the character classes that make up the alphabet.
type Charset struct {
	Upper   bool
	Lower   bool
	Digits  bool
	Symbols bool
}

// AllClasses enables every class: 89 characters in total.
var AllClasses = Charset{Upper: true, Lower: true, Digits: true, Symbols: true}

// Alphabet returns the concatenation of the enabled classes.
func (c Charset) Alphabet() string {
	var b strings.Builder
	if c.Upper {
		b.WriteString(upperChars)
	}
	if c.Lower {
		b.WriteString(lowerChars)
	}
	if c.Digits {
		b.WriteString(digitChars)
	}
	if c.Symbols {
		b.WriteString(symbolChars)
	}
	return b.String()
}

// NormalizeLength maps 0 to DefaultLength and anything outside
// [MinLength, MaxLength] to FallbackLength.
func NormalizeLength(length int) int {
	switch {
	case length == 0:
		return DefaultLength
	case length < MinLength, length > MaxLength:
		return FallbackLength
	}
	return length
}

// ParseLength converts user input into a length suitable for Generate.
// Blank input means "not constrained" and yields 0; text that is not an
// integer yields FallbackLength.
func ParseLength(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return FallbackLength
	}
	if n == 0 {
		// an explicit zero is out of range, not "unconstrained"
		return FallbackLength
	}
	return NormalizeLength(n)
}

// Generator draws secrets from a random source.
type Generator struct {
	rand io.Reader
}

// New returns a Generator backed by crypto/rand.
func New() *Generator {
	return &Generator{rand: rand.Reader}
}

// NewWithReader returns a Generator reading randomness from r.
func NewWithReader(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Generate returns a secret of NormalizeLength(length) characters drawn
// from cs. It fails with common.ErrEmptyAlphabet when no class is enabled.
func (g *Generator) Generate(length int, cs Charset) (string, error) {
	alphabet := cs.Alphabet()
	if alphabet == "" {
		return "", common.ErrEmptyAlphabet
	}

	n := NormalizeLength(length)
	size := big.NewInt(int64(len(alphabet)))

	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(g.rand, size)
		if err != nil {
			return "", fmt.Errorf("failed to read randomness: %w", err)
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}

var defaultGenerator = New()

// Generate uses a crypto/rand backed Generator.
func Generate(length int, cs Charset) (string, error) {
	return defaultGenerator.Generate(length, cs)
}
