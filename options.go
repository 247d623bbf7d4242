package share

import (
	"crypto/rand"
	"io"
	"log/slog"

	"github.com/jsonshare/share-go/clock"
)

// codecConfig holds configuration for a Codec.
type codecConfig struct {
	clock  clock.Clock
	random io.Reader
	logger *slog.Logger
}

// Option configures a Codec.
type Option func(*codecConfig)

// WithClock sets the time source used to stamp new payloads and to check
// expiration. Default: clock.Real().
func WithClock(c clock.Clock) Option {
	return func(cfg *codecConfig) {
		if c != nil {
			cfg.clock = c
		}
	}
}

// WithRandReader sets the source of keys, salts and nonces. It must be
// cryptographically secure outside of tests. Default: crypto/rand.Reader.
func WithRandReader(r io.Reader) Option {
	return func(cfg *codecConfig) {
		if r != nil {
			cfg.random = r
		}
	}
}

// WithLogger sets the logger for debug diagnostics. The codec never logs
// plaintext, keys, passphrases or payload strings. Default: discard.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *codecConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

func defaultConfig() *codecConfig {
	return &codecConfig{
		clock:  clock.Real(),
		random: rand.Reader,
		logger: slog.New(slog.DiscardHandler),
	}
}
