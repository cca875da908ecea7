package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicketID(t *testing.T) {
	a := NewTicketID()
	b := NewTicketID()

	_, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.False(t, LooksLikeShortCode(a), "ticket IDs must dispatch as full identifiers")
}

func TestNewShortCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := NewShortCode()
		require.NoError(t, err)
		assert.Len(t, code, ShortCodeLength)
		assert.Regexp(t, `^[A-Z0-9]{6}$`, code)
		seen[code] = true
	}
	// 100 draws from a 36^6 space colliding down to a handful would mean
	// the generator is broken.
	assert.Greater(t, len(seen), 90)
}

func TestNewShortCode_UniformDistribution(t *testing.T) {
	const draws = 20000
	counts := make(map[byte]int, len(shortCodeAlphabet))
	for i := 0; i < draws; i++ {
		code, err := NewShortCode()
		require.NoError(t, err)
		for j := 0; j < len(code); j++ {
			counts[code[j]]++
		}
	}

	// 120k characters over a 36-letter alphabet: every letter should land
	// close to the expected 3333. A biased draw (plain modulo over 256)
	// puts the first four letters near 3780, well past the upper bound.
	expected := draws * ShortCodeLength / len(shortCodeAlphabet)
	for i := 0; i < len(shortCodeAlphabet); i++ {
		c := counts[shortCodeAlphabet[i]]
		assert.Greater(t, c, expected*9/10, "letter %c underrepresented: %d", shortCodeAlphabet[i], c)
		assert.Less(t, c, expected*11/10, "letter %c overrepresented: %d", shortCodeAlphabet[i], c)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "AB12CD", Normalize("ab12cd"))
	assert.Equal(t, "AB12CD", Normalize("  Ab12Cd "))
}

func TestLooksLikeShortCode(t *testing.T) {
	assert.True(t, LooksLikeShortCode("AB12CD"))
	assert.True(t, LooksLikeShortCode("ABCDEFGH12"))
	assert.False(t, LooksLikeShortCode("ab12cd-ab12cd"))
	assert.False(t, LooksLikeShortCode(NewTicketID()))
}
