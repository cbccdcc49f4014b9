package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken_LengthAndAlphabet(t *testing.T) {
	for range 100 {
		token, err := GenerateToken()
		require.NoError(t, err)
		assert.Len(t, token, TokenLength)

		for _, r := range token {
			isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
			assert.True(t, isAlnum, "token contains excluded character %q in %q", r, token)
		}
	}
}

func TestGenerateToken_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for range 100 {
		token, err := GenerateToken()
		require.NoError(t, err)

		_, dup := seen[token]
		assert.False(t, dup, "duplicate token %q", token)
		seen[token] = struct{}{}
	}
}
