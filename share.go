package share

import (
	"io"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/jsonshare/share-go/clock"
	"github.com/jsonshare/share-go/internal/crypto"
	"github.com/jsonshare/share-go/internal/wire"
)

const (
	// MaxPayloadChars is the maximum length of the encoded Data string.
	MaxPayloadChars = 6000

	// Expiration is how long a payload stays redeemable after creation. A
	// payload exactly Expiration old is still valid.
	Expiration = 5 * time.Minute

	// MaxDecompressedSize caps the decompressed frame on decode.
	MaxDecompressedSize = wire.MaxDecompressedSize
)

var expirationSecs = uint64(Expiration / time.Second)

// Mode identifies how a payload's key was sourced.
type Mode string

const (
	// ModeQuick payloads are sealed with a random key carried alongside the
	// link.
	ModeQuick Mode = "quick"
	// ModeProtected payloads are sealed with a key derived from a
	// passphrase the recipient must supply.
	ModeProtected Mode = "protected"
)

func modeForVersion(version byte) Mode {
	if version == wire.VersionRandomKey {
		return ModeQuick
	}
	return ModeProtected
}

// SharePayload is the result of Create.
type SharePayload struct {
	// Data is the unpadded base64url payload, at most MaxPayloadChars long.
	Data string `json:"data"`
	// Key is the base64url random key in quick mode. It is empty in
	// protected mode; the passphrase is never embedded.
	Key string `json:"key,omitempty"`
}

// Mode reports which mode produced the payload.
func (p *SharePayload) Mode() Mode {
	if p.Key != "" {
		return ModeQuick
	}
	return ModeProtected
}

// DecodeResult is the result of Decode.
type DecodeResult struct {
	// JSON is the shared document, byte-for-byte as given to Create.
	JSON string `json:"json"`
	// CreatedAt is the creation time in Unix seconds.
	CreatedAt uint64 `json:"createdAt"`
	// Mode is ModeQuick or ModeProtected.
	Mode Mode `json:"mode"`
}

// CreatedTime returns CreatedAt as a time.Time.
func (r *DecodeResult) CreatedTime() time.Time {
	return time.Unix(int64(r.CreatedAt), 0)
}

// Codec creates and redeems share payloads. A Codec holds no mutable state
// and is safe for concurrent use as long as its clock and random source are.
type Codec struct {
	clock  clock.Clock
	random io.Reader
	logger *slog.Logger
}

// New creates a Codec.
func New(opts ...Option) *Codec {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Codec{
		clock:  cfg.clock,
		random: cfg.random,
		logger: cfg.logger,
	}
}

var defaultCodec = New()

// CreateSharePayload encodes json with the default Codec. An empty
// passphrase selects quick mode.
func CreateSharePayload(json, passphrase string) (*SharePayload, error) {
	return defaultCodec.Create(json, passphrase)
}

// DecodeSharePayload redeems a payload with the default Codec.
func DecodeSharePayload(data, keyOrPassphrase string, isPassphrase bool) (*DecodeResult, error) {
	return defaultCodec.Decode(data, keyOrPassphrase, isPassphrase)
}

// Create encodes json into a share payload.
//
// A non-empty passphrase selects protected mode; the key is derived with
// PBKDF2 and the returned Key is empty. Otherwise a random 256-bit key is
// generated and returned in Key.
//
// The pipeline is frame, DEFLATE, AES-256-GCM, base64url. The size limit is
// applied to the final encoded string.
func (c *Codec) Create(json, passphrase string) (*SharePayload, error) {
	if json == "" {
		return nil, c.fail("create", "input", ErrEmptyInput)
	}

	version := wire.VersionRandomKey
	if passphrase != "" {
		version = wire.VersionPassphrase
	}

	frame := wire.Frame(version, c.now(), []byte(json))
	compressed, err := wire.Compress(frame)
	if err != nil {
		return nil, c.fail("create", "compress", wrapWireError(err))
	}

	key, prefix, err := c.keyMaterial(version, passphrase)
	if err != nil {
		return nil, c.fail("create", "key", asShareError(err))
	}

	sealed, err := crypto.EncryptAES(key, compressed, c.random)
	if err != nil {
		return nil, c.fail("create", "encrypt", ErrEncryptionFailed)
	}

	data := crypto.ToBase64URL(append(prefix, sealed...))
	if len(data) > MaxPayloadChars {
		c.logger.Debug("share payload too large", "encoded_len", len(data), "max", MaxPayloadChars)
		return nil, c.fail("create", "encode", ErrPayloadTooLarge)
	}

	payload := &SharePayload{Data: data}
	if version == wire.VersionRandomKey {
		payload.Key = crypto.ToBase64URL(key)
	}

	c.logger.Debug("share payload created",
		"mode", modeForVersion(version),
		"json_len", len(json),
		"compressed_len", len(compressed),
		"encoded_len", len(data),
	)
	return payload, nil
}

// keyMaterial returns the AES key for version and the bytes that precede
// the sealed frame on the wire: the PBKDF2 salt in passphrase mode, nothing
// in random-key mode. The returned error is always a ShareError.
func (c *Codec) keyMaterial(version byte, passphrase string) (key, prefix []byte, err error) {
	if version == wire.VersionRandomKey {
		key, err = crypto.GenerateKey(c.random)
		if err != nil {
			return nil, nil, ErrEncryptionFailed
		}
		return key, nil, nil
	}

	salt, err := crypto.GenerateSalt(c.random)
	if err != nil {
		return nil, nil, ErrEncryptionFailed
	}
	key, err = crypto.DeriveKey(passphrase, salt)
	if err != nil {
		return nil, nil, ErrKeyDerivationFailed
	}
	return key, salt, nil
}

// Decode redeems a payload produced by Create.
//
// In protected mode keyOrPassphrase is the passphrase; otherwise it is the
// base64url key returned in SharePayload.Key. isPassphrase must match the
// mode the payload was created in; a mismatch fails and never yields a
// result.
func (c *Codec) Decode(data, keyOrPassphrase string, isPassphrase bool) (*DecodeResult, error) {
	raw, err := crypto.FromBase64URL(data)
	if err != nil {
		return nil, c.fail("decode", "base64", ErrInvalidBase64)
	}

	var (
		decrypted       []byte
		expectedVersion byte
	)
	if isPassphrase {
		expectedVersion = wire.VersionPassphrase
		decrypted, err = c.openWithPassphrase(raw, keyOrPassphrase)
	} else {
		expectedVersion = wire.VersionRandomKey
		decrypted, err = c.openWithKey(raw, keyOrPassphrase)
	}
	if err != nil {
		return nil, c.fail("decode", "decrypt", asShareError(err))
	}

	frame, err := wire.Decompress(decrypted, MaxDecompressedSize)
	if err != nil {
		return nil, c.fail("decode", "decompress", wrapWireError(err))
	}

	header, body, err := wire.ParseHeader(frame)
	if err != nil {
		return nil, c.fail("decode", "header", wrapWireError(err))
	}
	if !utf8.Valid(body) {
		return nil, c.fail("decode", "utf8", ErrInvalidPayload)
	}

	if header.Version != expectedVersion {
		c.logger.Debug("share payload version mismatch", "version", header.Version, "expected", expectedVersion)
		return nil, c.fail("decode", "version", ErrInvalidPayload)
	}

	if err := c.checkExpiration(header.CreatedAt); err != nil {
		return nil, c.fail("decode", "expiration", ErrExpired)
	}

	result := &DecodeResult{
		JSON:      string(body),
		CreatedAt: header.CreatedAt,
		Mode:      modeForVersion(header.Version),
	}
	c.logger.Debug("share payload decoded", "mode", result.Mode, "json_len", len(body))
	return result, nil
}

// openWithPassphrase opens salt (16) || nonce (12) || ciphertext || tag.
func (c *Codec) openWithPassphrase(raw []byte, passphrase string) ([]byte, error) {
	if len(raw) < crypto.SaltSize+crypto.AESNonceSize+1 {
		return nil, ErrInvalidPayload
	}

	salt, sealed := raw[:crypto.SaltSize], raw[crypto.SaltSize:]
	key, err := crypto.DeriveKey(passphrase, salt)
	if err != nil {
		return nil, ErrKeyDerivationFailed
	}

	plaintext, err := crypto.DecryptAES(key, sealed)
	if err != nil {
		return nil, wrapCryptoError(err)
	}
	return plaintext, nil
}

// openWithKey opens nonce (12) || ciphertext || tag with a base64url key.
func (c *Codec) openWithKey(raw []byte, encodedKey string) ([]byte, error) {
	key, err := crypto.FromBase64URL(encodedKey)
	if err != nil {
		return nil, ErrInvalidBase64
	}
	if len(key) != crypto.AESKeySize {
		return nil, ErrInvalidPayload
	}

	plaintext, err := crypto.DecryptAES(key, raw)
	if err != nil {
		return nil, wrapCryptoError(err)
	}
	return plaintext, nil
}

// checkExpiration fails when the payload is more than Expiration old. A
// creation time in the future counts as age zero.
func (c *Codec) checkExpiration(createdAt uint64) error {
	now := c.now()

	var age uint64
	if now > createdAt {
		age = now - createdAt
	}
	if age > expirationSecs {
		c.logger.Debug("share payload expired", "age_seconds", age, "limit_seconds", expirationSecs)
		return ErrExpired
	}
	return nil
}

// now returns the clock reading in Unix seconds. Times before the epoch
// read as zero.
func (c *Codec) now() uint64 {
	secs := c.clock.Now().Unix()
	if secs < 0 {
		return 0
	}
	return uint64(secs)
}

func (c *Codec) fail(op, stage string, e ShareError) error {
	c.logger.Debug("share payload rejected", "op", op, "stage", stage, "code", e.Code())
	return e
}
