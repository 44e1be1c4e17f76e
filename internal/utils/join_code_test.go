package utils

import (
	"strings"
	"testing"

	"github.com/KhairnarLokesh/hackmate-ai/internal/constants"
	"github.com/stretchr/testify/require"
)

func TestGenerateJoinCode(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 100; i++ {
		code, err := GenerateJoinCode()
		require.NoError(t, err)
		require.Len(t, code, constants.JoinCodeLength)

		for _, r := range code {
			require.True(t, strings.ContainsRune(constants.JoinCodeAlphabet, r),
				"unexpected character %q in join code %s", r, code)
		}

		seen[code] = struct{}{}
	}

	// 100 draws from a 36^6 space should not all collide.
	require.Greater(t, len(seen), 1)
}
