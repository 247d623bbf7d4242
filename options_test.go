package share

import (
	"bytes"
	"crypto/rand"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jsonshare/share-go/clock"
)

func TestDefaultConstants(t *testing.T) {
	if MaxPayloadChars != 6000 {
		t.Errorf("MaxPayloadChars = %d, want 6000", MaxPayloadChars)
	}
	if Expiration != 300*time.Second {
		t.Errorf("Expiration = %v, want 5m", Expiration)
	}
	if MaxDecompressedSize != 10*1024*1024 {
		t.Errorf("MaxDecompressedSize = %d, want 10 MiB", MaxDecompressedSize)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.clock == nil {
		t.Error("clock is nil")
	}
	if cfg.random != rand.Reader {
		t.Error("random is not crypto/rand.Reader")
	}
	if cfg.logger == nil {
		t.Error("logger is nil")
	}
}

func TestWithClock(t *testing.T) {
	cfg := defaultConfig()
	c := clock.Fake(testEpoch)
	WithClock(c)(cfg)
	if cfg.clock != c {
		t.Error("clock was not set")
	}
}

func TestWithRandReader(t *testing.T) {
	cfg := defaultConfig()
	r := errorReader{}
	WithRandReader(r)(cfg)
	if cfg.random != r {
		t.Error("random was not set")
	}
}

func TestWithLogger(t *testing.T) {
	cfg := defaultConfig()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	WithLogger(logger)(cfg)
	if cfg.logger != logger {
		t.Error("logger was not set")
	}
}

func TestOptions_NilIgnored(t *testing.T) {
	cfg := defaultConfig()
	WithClock(nil)(cfg)
	WithRandReader(nil)(cfg)
	WithLogger(nil)(cfg)

	if cfg.clock == nil || cfg.random == nil || cfg.logger == nil {
		t.Errorf("nil option replaced a default: %+v", cfg)
	}
}

func TestNew_AppliesOptions(t *testing.T) {
	c := clock.Fake(testEpoch)
	codec := New(WithClock(c))

	if codec.clock != c {
		t.Error("Codec did not receive the clock")
	}
	if codec.now() != uint64(testEpoch.Unix()) {
		t.Errorf("now() = %d, want %d", codec.now(), testEpoch.Unix())
	}
}

func TestWithLogger_NoSecretsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	codec := New(WithClock(clock.Fake(testEpoch)), WithLogger(logger))

	const secretJSON = `{"token":"s3cr3t-value"}`
	const passphrase = "hunter2-passphrase"

	quick, err := codec.Create(secretJSON, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := codec.Decode(quick.Data, quick.Key, false); err != nil {
		t.Fatal(err)
	}
	protected, err := codec.Create(secretJSON, passphrase)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := codec.Decode(protected.Data, "wrong-"+passphrase, true); err == nil {
		t.Fatal("expected wrong passphrase to fail")
	}

	logs := buf.String()
	if !strings.Contains(logs, "share payload created") {
		t.Errorf("missing create log, got:\n%s", logs)
	}
	if !strings.Contains(logs, "code="+CodeDecryptionFailed) {
		t.Errorf("missing rejection code, got:\n%s", logs)
	}

	for _, secret := range []string{"s3cr3t-value", passphrase, quick.Key, quick.Data, protected.Data} {
		if strings.Contains(logs, secret) {
			t.Errorf("log output contains secret %q", secret)
		}
	}
}
