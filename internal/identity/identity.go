// Package identity generates the two identifiers carried by every
// booking: the opaque ticket ID and the short human-typeable check-in
// code.
package identity

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// shortCodeAlphabet is the fixed alphabet short codes are drawn from.
const shortCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ShortCodeLength is the fixed length of a short code.
const ShortCodeLength = 6

// shortCodeMaxLen is the dispatch threshold at verification: anything this
// long or shorter is treated as a short code, anything longer as a full
// ticket ID.
const shortCodeMaxLen = 10

// NewTicketID returns a fresh opaque ticket identifier. The random space
// is large enough that no uniqueness check is needed.
func NewTicketID() string {
	return uuid.New().String()
}

// NewShortCode draws a single candidate short code. Uniqueness is NOT
// guaranteed; callers must check against persisted state and re-draw on
// collision.
func NewShortCode() (string, error) {
	// Largest multiple of the alphabet size that fits in a byte; values
	// at or above it are rejected so every character is equally likely.
	const limit = 256 - 256%len(shortCodeAlphabet)

	code := make([]byte, 0, ShortCodeLength)
	buf := make([]byte, ShortCodeLength)
	for len(code) < ShortCodeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			code = append(code, shortCodeAlphabet[int(b)%len(shortCodeAlphabet)])
			if len(code) == ShortCodeLength {
				break
			}
		}
	}
	return string(code), nil
}

// Normalize uppercases a presented code for case-insensitive short-code
// lookup.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// LooksLikeShortCode reports whether a presented code should be resolved
// as a short code rather than a full ticket ID.
func LooksLikeShortCode(code string) bool {
	return len(code) <= shortCodeMaxLen
}
