package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"
)

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != AESKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), AESKeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return gcm, nil
}

// EncryptAES encrypts plaintext using AES-256-GCM with a nonce drawn from
// random.
// Returns: nonce (12 bytes) || ciphertext || tag (16 bytes)
func EncryptAES(key, plaintext []byte, random io.Reader) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce, err := RandomBytes(random, AESNonceSize)
	if err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}

	sealed := make([]byte, 0, AESNonceSize+len(plaintext)+AESTagSize)
	sealed = append(sealed, nonce...)
	return gcm.Seal(sealed, nonce, plaintext, nil), nil
}

// DecryptAES decrypts data produced by EncryptAES.
// The input format is: nonce (12 bytes) || ciphertext || tag (16 bytes)
func DecryptAES(key, sealed []byte) ([]byte, error) {
	if len(key) != AESKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), AESKeySize)
	}

	if len(sealed) < AESNonceSize+1 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrCiphertextTooShort, len(sealed))
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := sealed[:AESNonceSize]
	ciphertextWithTag := sealed[AESNonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertextWithTag, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}
