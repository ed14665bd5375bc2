package gamecode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCode(t *testing.T) {
	gen := New()

	t.Run("codes have the fixed length and alphabet", func(t *testing.T) {
		for trial := 0; trial < 100; trial++ {
			code, err := gen.NewCode()
			require.NoError(t, err)
			assert.Len(t, code, Length)
			for _, r := range code {
				assert.True(t, strings.ContainsRune(Alphabet, r), "unexpected rune %q in %s", r, code)
			}
		}
	})

	t.Run("codes do not repeat in practice", func(t *testing.T) {
		seen := make(map[string]bool)
		for trial := 0; trial < 100; trial++ {
			code, err := gen.NewCode()
			require.NoError(t, err)
			seen[code] = true
		}
		assert.Len(t, seen, 100)
	})
}
