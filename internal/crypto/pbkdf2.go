package crypto

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// DeriveKey derives an AES-256 key from a passphrase using
// PBKDF2-HMAC-SHA256 with PBKDF2Iterations rounds.
//
// The result is deterministic for a given passphrase and salt. An empty
// passphrase is accepted; salt must be exactly SaltSize bytes.
func DeriveKey(passphrase string, salt []byte) ([]byte, error) {
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidSaltSize, len(salt), SaltSize)
	}

	return pbkdf2.Key([]byte(passphrase), salt, PBKDF2Iterations, AESKeySize, sha256.New), nil
}
