package party

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// CodeAlphabet leaves out 0/O and 1/I so codes survive being read aloud.
const CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CodeLength is the length of a party code.
const CodeLength = 5

// GenerateCode returns a random party code.
func GenerateCode() (string, error) {
	return GenerateCodeFrom(rand.Reader)
}

// GenerateCodeFrom draws a party code from the given entropy source.
func GenerateCodeFrom(r io.Reader) (string, error) {
	b := make([]byte, CodeLength)
	max := big.NewInt(int64(len(CodeAlphabet)))
	for i := range b {
		idx, err := rand.Int(r, max)
		if err != nil {
			return "", fmt.Errorf("generate party code: %w", err)
		}
		b[i] = CodeAlphabet[idx.Int64()]
	}
	return string(b), nil
}

// NormalizeCode upper-cases and trims user input; lookups are case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCode reports whether code is well formed after normalisation.
func ValidCode(code string) bool {
	code = NormalizeCode(code)
	if len(code) != CodeLength {
		return false
	}
	for _, r := range code {
		if !strings.ContainsRune(CodeAlphabet, r) {
			return false
		}
	}
	return true
}

// NewID returns a fresh record id.
func NewID() string {
	return uuid.NewString()
}

// NewPlayerID returns an id of the form player_xxxxxxxxx.
func NewPlayerID() string {
	return "player_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}
