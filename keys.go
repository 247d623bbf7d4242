package share

import (
	"crypto/rand"

	"github.com/jsonshare/share-go/internal/crypto"
)

// EncodeBase64URL encodes bytes as unpadded URL-safe base64.
func EncodeBase64URL(data []byte) string {
	return crypto.ToBase64URL(data)
}

// DecodeBase64URL decodes unpadded URL-safe base64. Malformed input returns
// ErrInvalidBase64.
func DecodeBase64URL(s string) ([]byte, error) {
	data, err := crypto.FromBase64URL(s)
	if err != nil {
		return nil, ErrInvalidBase64
	}
	return data, nil
}

// GenerateRandomKey returns a fresh 256-bit key from crypto/rand.
func GenerateRandomKey() ([]byte, error) {
	key, err := crypto.GenerateKey(rand.Reader)
	if err != nil {
		return nil, ErrEncryptionFailed
	}
	return key, nil
}

// DeriveKeyFromPassphrase derives the 256-bit key used in protected mode
// with PBKDF2-HMAC-SHA256 (100,000 iterations). salt must be 16 bytes.
func DeriveKeyFromPassphrase(passphrase string, salt []byte) ([]byte, error) {
	key, err := crypto.DeriveKey(passphrase, salt)
	if err != nil {
		return nil, ErrKeyDerivationFailed
	}
	return key, nil
}
