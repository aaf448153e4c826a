package token

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// NewProofToken generates the opaque token minted after a successful OTP
// verification. Any holder can complete the flow it authorizes, so it must
// come from a secure random source.
func NewProofToken() string {
	return uuid.NewString()
}

// NewCode generates a random n-digit numeric OTP code, zero-padded.
func NewCode(n int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < n; i++ {
		max.Mul(max, big.NewInt(10))
	}
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", n, v), nil
}
