// Package password implements the credential codec: salted PBKDF2 key
// stretching for account passwords and reset secrets, plus the random
// material generators that feed it.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"math/big"

	"golang.org/x/crypto/pbkdf2"
)

const (
	hashIterations = 10000
	hashKeyLength  = 100
	saltByteLength = 64

	resetSecretLength   = 25
	resetSecretAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Derive computes the hex-encoded PBKDF2-SHA256 digest of secret under salt.
// Deterministic: the same (secret, salt) pair always yields the same digest.
func Derive(secret, salt string) string {
	key := pbkdf2.Key([]byte(secret), []byte(salt), hashIterations, hashKeyLength, sha256.New)
	return hex.EncodeToString(key)
}

// NewSalt returns a fresh cryptographically random salt, hex encoded.
func NewSalt() (string, error) {
	b := make([]byte, saltByteLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Verify recomputes the digest of secret under salt and compares it to the
// stored digest in constant time.
func Verify(secret, digest, salt string) bool {
	return subtle.ConstantTimeCompare([]byte(Derive(secret, salt)), []byte(digest)) == 1
}

// NewResetSecret returns a random single-use secret for the password-reset
// flow: 25 characters drawn uniformly from upper, lower, and digit classes.
func NewResetSecret() (string, error) {
	max := big.NewInt(int64(len(resetSecretAlphabet)))
	b := make([]byte, resetSecretLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = resetSecretAlphabet[n.Int64()]
	}
	return string(b), nil
}
