package crypto

import "errors"

var (
	// ErrInvalidKeySize is returned when the AES key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidSaltSize is returned when the PBKDF2 salt size is invalid.
	ErrInvalidSaltSize = errors.New("invalid salt size")

	// ErrCiphertextTooShort is returned when a sealed blob cannot hold a
	// nonce and at least one byte of ciphertext.
	ErrCiphertextTooShort = errors.New("ciphertext too short")

	// ErrDecryptionFailed is returned when the GCM tag does not verify.
	// This covers wrong keys and tampered ciphertext alike.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrRandomSource is returned when the random source cannot supply
	// enough bytes.
	ErrRandomSource = errors.New("random source failure")
)
