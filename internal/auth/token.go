package auth

import (
	"crypto/rand"
	"math/big"
)

const recoveryTokenLength = 30

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RandomToken returns a random string of n ASCII letters suitable for the
// opaque password-recovery hash and secret values stored on a user.
func RandomToken(n int) (string, error) {
	b := make([]byte, n)
	max := big.NewInt(int64(len(letters)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = letters[idx.Int64()]
	}
	return string(b), nil
}

// NewRecoveryToken returns a recovery token of the standard length.
func NewRecoveryToken() (string, error) {
	return RandomToken(recoveryTokenLength)
}
