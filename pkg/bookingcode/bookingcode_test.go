package bookingcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		code, err := Generate()
		require.NoError(t, err)
		assert.Len(t, code, Length)

		for _, r := range code {
			assert.True(t, strings.ContainsRune(alphabet, r), "unexpected rune %q in code %s", r, code)
		}
		seen[code] = true
	}

	// Collisions across 100 draws from a 36^6 space would point at a
	// broken random source.
	assert.Greater(t, len(seen), 95)
}
