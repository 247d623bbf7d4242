package crypto

import (
	"fmt"
	"io"
)

// RandomBytes reads exactly n bytes from random.
func RandomBytes(random io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(random, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}
	return buf, nil
}

// GenerateKey returns a fresh AES-256 key read from random.
func GenerateKey(random io.Reader) ([]byte, error) {
	return RandomBytes(random, AESKeySize)
}

// GenerateSalt returns a fresh PBKDF2 salt read from random.
func GenerateSalt(random io.Reader) ([]byte, error) {
	return RandomBytes(random, SaltSize)
}
