package utils

import (
	"crypto/rand"
	"fmt"

	"github.com/KhairnarLokesh/hackmate-ai/internal/constants"
)

// GenerateJoinCode generates a random 6-character project join code over
// the uppercase alphanumeric alphabet. Codes are not checked for
// uniqueness against existing projects.
func GenerateJoinCode() (string, error) {
	bytes := make([]byte, constants.JoinCodeLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	code := make([]byte, constants.JoinCodeLength)
	for i, b := range bytes {
		code[i] = constants.JoinCodeAlphabet[int(b)%len(constants.JoinCodeAlphabet)]
	}

	return string(code), nil
}
