// Package crypto provides the cryptographic primitives for the share-payload
// protocol.
//
// # Algorithm Suite
//
//   - AES-256-GCM: Authenticated encryption for the compressed frame. A fresh
//     12-byte nonce is drawn for every call and stored in front of the
//     ciphertext, so the sealed form is nonce (12) || ciphertext || tag (16).
//
//   - PBKDF2-HMAC-SHA256 (RFC 8018): Derives the 256-bit AES key from a user
//     passphrase and a 16-byte random salt, using 100,000 iterations.
//
// AES-GCM nonces MUST be unique for each encryption with the same key. Nonces
// are always drawn from the supplied random source and never derived from
// counters or timestamps.
//
// # Random Source
//
// Every function that needs entropy takes an io.Reader. Callers pass
// crypto/rand.Reader in production; tests may pass deterministic or failing
// readers.
//
// # Base64 Encoding
//
// [ToBase64URL]/[FromBase64URL] implement URL-safe base64 without padding
// (RFC 4648 §5). They are used for share payloads and random keys.
package crypto
