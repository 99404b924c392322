// internal/game/secret.go
//
// Secret number sources for new sessions. The default draws from
// crypto/rand; Fixed pins the secret for tests and host-side overrides.

package game

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// MaxSecretNumber bounds the secret: every session hides an integer in
// [1, MaxSecretNumber].
const MaxSecretNumber = 10

// SecretSource yields one secret number per new session.
type SecretSource interface {
	Generate() (int, error)
}

// CryptoSecrets draws uniformly from crypto/rand. A failed draw fails the
// session construction; there is no fallback secret.
type CryptoSecrets struct{}

// Generate returns a uniform integer in [1, MaxSecretNumber].
func (CryptoSecrets) Generate() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(MaxSecretNumber))
	if err != nil {
		return 0, fmt.Errorf("draw secret: %w", err)
	}
	return int(n.Int64()) + 1, nil
}

// Fixed returns a source that always yields n.
func Fixed(n int) SecretSource { return fixedSecret(n) }

type fixedSecret int

func (f fixedSecret) Generate() (int, error) { return int(f), nil }
