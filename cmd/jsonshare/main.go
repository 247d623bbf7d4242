// jsonshare creates and redeems share payloads from the terminal.
//
//	jsonshare create [--file F] [--passphrase P | --prompt] [--jsonc | --yaml] [--json]
//	jsonshare decode --data D (--key K | --passphrase P | --prompt) [--json]
//	jsonshare version
//
// create reads a JSON document (stdin by default) and prints the payload
// data on the first line and, in quick mode, the key on the second. decode
// prints the shared document. --prompt reads the passphrase from the
// terminal with echo disabled. Both commands accept --log-level and fall
// back to JSONSHARE_PASSPHRASE and JSONSHARE_LOG_LEVEL, which may also be
// set in a .env file in the working directory.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	share "github.com/jsonshare/share-go"
)

const (
	envPassphrase = "JSONSHARE_PASSPHRASE"
	envLogLevel   = "JSONSHARE_LOG_LEVEL"

	usage = "usage: jsonshare <create|decode|version> [flags]"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// exitFunc is the function called to exit the program (can be overridden for testing)
var exitFunc = os.Exit

// codecFactory builds the codec used by create and decode (can be overridden
// for testing).
var codecFactory = func(logger *slog.Logger) *share.Codec {
	return share.New(share.WithLogger(logger))
}

// readPassword reads one line from the terminal with echo disabled (can be
// overridden for testing).
var readPassword = readTerminalPassword

// readTerminalPassword prompts on stderr and reads from stdin, which must be
// a terminal.
func readTerminalPassword(prompt string, stdin io.Reader, stderr io.Writer) ([]byte, error) {
	f, ok := stdin.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil, errors.New("no terminal available for passphrase prompt (use --passphrase or " + envPassphrase + ")")
	}
	fd := int(f.Fd())

	fmt.Fprint(stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(stderr)
	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}
	return passphrase, nil
}

// Config holds the I/O configuration for the command.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// EnvFile is loaded before flags are parsed. Empty disables loading; a
	// missing file is ignored.
	EnvFile string
}

// DefaultConfig returns a Config wired to the process's standard streams.
func DefaultConfig() *Config {
	return &Config{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		EnvFile: ".env",
	}
}

func run(args []string, cfg *Config) error {
	if len(args) < 2 {
		return errors.New(usage)
	}

	if err := loadEnv(cfg.EnvFile); err != nil {
		return err
	}

	switch args[1] {
	case "create":
		return runCreate(args[2:], cfg)
	case "decode":
		return runDecode(args[2:], cfg)
	case "version", "--version":
		fmt.Fprintf(cfg.Stdout, "jsonshare %s\n", version)
		return nil
	case "help", "-h", "--help":
		fmt.Fprintln(cfg.Stdout, usage)
		return nil
	default:
		return fmt.Errorf("unknown command: %s", args[1])
	}
}

func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func runCreate(args []string, cfg *Config) error {
	var (
		file       string
		passphrase string
		prompt     bool
		allowJSONC bool
		fromYAML   bool
		asJSON     bool
		logLevel   string
	)

	flagSet := pflag.NewFlagSet("create", pflag.ContinueOnError)
	flagSet.SetOutput(cfg.Stderr)
	flagSet.StringVarP(&file, "file", "f", "-", "read the JSON document from this file (- for stdin)")
	flagSet.StringVarP(&passphrase, "passphrase", "p", "", "protect the payload with a passphrase (default $"+envPassphrase+")")
	flagSet.BoolVar(&prompt, "prompt", false, "read the passphrase from the terminal")
	flagSet.BoolVar(&allowJSONC, "jsonc", false, "strip comments and trailing commas before sharing")
	flagSet.BoolVar(&fromYAML, "yaml", false, "read a YAML document and share it as JSON")
	flagSet.BoolVar(&asJSON, "json", false, "print the response envelope as JSON")
	flagSet.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (default $"+envLogLevel+" or warn)")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	if prompt && flagSet.Changed("passphrase") {
		return errors.New("--prompt and --passphrase are mutually exclusive")
	}
	if allowJSONC && fromYAML {
		return errors.New("--jsonc and --yaml are mutually exclusive")
	}

	logger, err := newLogger(cfg.Stderr, logLevel)
	if err != nil {
		return err
	}

	input, err := readInput(file, cfg.Stdin)
	if err != nil {
		return err
	}
	switch {
	case allowJSONC:
		input = jsonc.ToJSON(input)
	case fromYAML:
		if input, err = yamlToJSON(input); err != nil {
			return err
		}
	}

	if len(input) > 0 && !json.Valid(input) {
		return errors.New("input is not valid JSON")
	}

	switch {
	case prompt:
		if passphrase, err = promptNewPassphrase(cfg.Stdin, cfg.Stderr); err != nil {
			return err
		}
	case !flagSet.Changed("passphrase"):
		passphrase = os.Getenv(envPassphrase)
	}

	payload, err := codecFactory(logger).Create(string(input), passphrase)
	if asJSON {
		if encErr := writeJSON(cfg.Stdout, share.NewCreateResponse(payload, err)); encErr != nil {
			return encErr
		}
	}
	if err != nil {
		return shareFailure("create", err, false)
	}
	if asJSON {
		return nil
	}

	fmt.Fprintln(cfg.Stdout, payload.Data)
	if payload.Key != "" {
		fmt.Fprintln(cfg.Stdout, payload.Key)
	}
	return nil
}

func runDecode(args []string, cfg *Config) error {
	var (
		data       string
		key        string
		passphrase string
		prompt     bool
		asJSON     bool
		logLevel   string
	)

	flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
	flagSet.SetOutput(cfg.Stderr)
	flagSet.StringVarP(&data, "data", "d", "", "payload data produced by create")
	flagSet.StringVarP(&key, "key", "k", "", "key printed by create in quick mode")
	flagSet.StringVarP(&passphrase, "passphrase", "p", "", "passphrase for a protected payload (default $"+envPassphrase+")")
	flagSet.BoolVar(&prompt, "prompt", false, "read the passphrase from the terminal")
	flagSet.BoolVar(&asJSON, "json", false, "print the response envelope as JSON")
	flagSet.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (default $"+envLogLevel+" or warn)")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	if data == "" {
		return errors.New("--data is required")
	}
	explicit := 0
	for _, name := range []string{"key", "passphrase", "prompt"} {
		if flagSet.Changed(name) {
			explicit++
		}
	}
	if explicit > 1 {
		return errors.New("--key, --passphrase and --prompt are mutually exclusive")
	}

	logger, err := newLogger(cfg.Stderr, logLevel)
	if err != nil {
		return err
	}

	isPassphrase := !flagSet.Changed("key")
	credential := key
	if isPassphrase {
		switch {
		case prompt:
			secret, err := readPassword("Passphrase: ", cfg.Stdin, cfg.Stderr)
			if err != nil {
				return err
			}
			credential = string(secret)
		case flagSet.Changed("passphrase"):
			credential = passphrase
		default:
			credential = os.Getenv(envPassphrase)
		}
		if credential == "" {
			return errors.New("one of --key, --passphrase or --prompt is required")
		}
	}

	result, err := codecFactory(logger).Decode(data, credential, isPassphrase)
	if asJSON {
		if encErr := writeJSON(cfg.Stdout, share.NewDecodeResponse(result, err, isPassphrase)); encErr != nil {
			return encErr
		}
	}
	if err != nil {
		return shareFailure("decode", err, isPassphrase)
	}
	if asJSON {
		return nil
	}

	io.WriteString(cfg.Stdout, result.JSON)
	if !strings.HasSuffix(result.JSON, "\n") {
		io.WriteString(cfg.Stdout, "\n")
	}
	return nil
}

func readInput(file string, stdin io.Reader) ([]byte, error) {
	if file == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return data, nil
}

// promptNewPassphrase asks for a passphrase twice and fails unless both
// entries match and are non-empty.
func promptNewPassphrase(stdin io.Reader, stderr io.Writer) (string, error) {
	first, err := readPassword("Passphrase: ", stdin, stderr)
	if err != nil {
		return "", err
	}
	second, err := readPassword("Confirm passphrase: ", stdin, stderr)
	if err != nil {
		return "", err
	}

	if len(first) == 0 {
		return "", errors.New("passphrase is empty")
	}
	if string(first) != string(second) {
		return "", errors.New("passphrases do not match")
	}
	return string(first), nil
}

// yamlToJSON converts a YAML document to compact JSON. Mappings must have
// string keys.
func yamlToJSON(input []byte) ([]byte, error) {
	if len(input) == 0 {
		return input, nil
	}

	var doc any
	if err := yaml.Unmarshal(input, &doc); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert YAML to JSON: %w", err)
	}
	return out, nil
}

// newLogger returns a logger on w: text when w is a terminal, JSON
// otherwise. An empty level falls back to JSONSHARE_LOG_LEVEL and then to
// warn.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	if level == "" {
		level = os.Getenv(envLogLevel)
	}
	if level == "" {
		level = "warn"
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	options := &slog.HandlerOptions{Level: l}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, options)), nil
	}
	return slog.New(slog.NewJSONHandler(w, options)), nil
}

func writeJSON(w io.Writer, v any) error {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// shareFailure wraps a codec error with its presentation code so the exit
// message carries both.
func shareFailure(op string, err error, isPassphrase bool) error {
	return fmt.Errorf("%s: %w [%s]", op, err, share.ErrorCode(err, isPassphrase))
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	exitFunc(1)
}
