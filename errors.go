package share

import (
	"errors"

	"github.com/jsonshare/share-go/internal/crypto"
	"github.com/jsonshare/share-go/internal/wire"
)

// ShareError is the closed set of failures returned by the share-payload
// protocol. Every error returned by Create, Decode and the package-level
// helpers is one of the constants below, so callers can branch with
// errors.Is or a type switch on the value.
//
// Messages are fixed strings and never include caller-supplied input, which
// makes them safe to render directly in a UI.
type ShareError uint8

const (
	// ErrCompressionFailed is returned when the DEFLATE writer fails while
	// encoding.
	ErrCompressionFailed ShareError = iota + 1

	// ErrEncryptionFailed is returned when the random source or the cipher
	// fails while encoding.
	ErrEncryptionFailed

	// ErrPayloadTooLarge is returned when the encoded payload exceeds
	// MaxPayloadChars characters.
	ErrPayloadTooLarge

	// ErrEmptyInput is returned when the JSON document is empty.
	ErrEmptyInput

	// ErrKeyDerivationFailed is returned when PBKDF2 cannot derive a key.
	ErrKeyDerivationFailed

	// ErrExpired is returned when a payload is older than Expiration.
	ErrExpired

	// ErrInvalidPayload is returned for structurally invalid payloads: wrong
	// lengths, malformed or oversized DEFLATE streams, invalid UTF-8, or a
	// version byte that does not match the decode mode.
	ErrInvalidPayload

	// ErrDecryptionFailed is returned when authentication fails: wrong key,
	// wrong passphrase, or tampered ciphertext.
	ErrDecryptionFailed

	// ErrInvalidBase64 is returned when the payload or key is not unpadded
	// base64url.
	ErrInvalidBase64
)

// Error codes returned by ShareError.Code and ErrorCode.
const (
	CodeExpired          = "expired"
	CodeInvalidPayload   = "invalid_payload"
	CodeDecryptionFailed = "decryption_failed"
	CodeInvalidBase64    = "invalid_base64"
	CodeWrongPassphrase  = "wrong_passphrase"
)

func (e ShareError) Error() string {
	switch e {
	case ErrCompressionFailed:
		return "Compression failed"
	case ErrEncryptionFailed:
		return "Encryption failed"
	case ErrPayloadTooLarge:
		return "Payload too large (max 6000 chars encoded)"
	case ErrEmptyInput:
		return "Input is empty"
	case ErrKeyDerivationFailed:
		return "Key derivation failed"
	case ErrExpired:
		return "This shared link has expired (links are valid for 5 minutes)"
	case ErrInvalidPayload:
		return "Invalid share link format"
	case ErrDecryptionFailed:
		return "Unable to decrypt - the link may be corrupted"
	case ErrInvalidBase64:
		return "Invalid share link encoding"
	default:
		return "Invalid share link format"
	}
}

// Code returns the stable machine-readable code for e.
func (e ShareError) Code() string {
	switch e {
	case ErrExpired:
		return CodeExpired
	case ErrDecryptionFailed, ErrEncryptionFailed, ErrKeyDerivationFailed:
		return CodeDecryptionFailed
	case ErrInvalidBase64:
		return CodeInvalidBase64
	default:
		return CodeInvalidPayload
	}
}

// ErrorCode returns the presentation code for err. When decoding in
// passphrase mode, ErrDecryptionFailed is reported as CodeWrongPassphrase;
// the error value itself is unchanged. Errors outside the ShareError set are
// reported as CodeInvalidPayload.
func ErrorCode(err error, isPassphrase bool) string {
	e := asShareError(err)
	if e == ErrDecryptionFailed && isPassphrase {
		return CodeWrongPassphrase
	}
	return e.Code()
}

func asShareError(err error) ShareError {
	var e ShareError
	if errors.As(err, &e) {
		return e
	}
	return ErrInvalidPayload
}

// wrapCryptoError converts internal/crypto errors raised while opening a
// payload into the public taxonomy.
func wrapCryptoError(err error) ShareError {
	switch {
	case errors.Is(err, crypto.ErrInvalidKeySize),
		errors.Is(err, crypto.ErrCiphertextTooShort):
		return ErrInvalidPayload
	case errors.Is(err, crypto.ErrInvalidSaltSize):
		return ErrKeyDerivationFailed
	default:
		return ErrDecryptionFailed
	}
}

// wrapWireError converts internal/wire errors into the public taxonomy.
// Only the encode side can produce ErrCompressionFailed; every decode-side
// framing or stream problem is ErrInvalidPayload.
func wrapWireError(err error) ShareError {
	if errors.Is(err, wire.ErrCompress) {
		return ErrCompressionFailed
	}
	return ErrInvalidPayload
}
