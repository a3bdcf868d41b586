// Package config holds kgviz configuration: defaults, an optional TOML file
// and the SOURCE_DATE_EPOCH override for reproducible output.
//
// Precedence, lowest first: [Default], the TOML file, command-line flags.
// A file only needs to name the keys it changes:
//
//	root = "/srv/graphs"
//	validate = false
//
//	[serve]
//	addr = ":9000"
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/kgviz/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// Filename is the config file looked up in the root directory.
	Filename = "kgviz.toml"

	// DefaultOutput is the output file name when none is given.
	DefaultOutput = "d3_graph.json"

	// DefaultAddr is the listen address of the HTTP service.
	DefaultAddr = ":8080"

	// DefaultMaxBodyBytes caps request bodies of the HTTP service (32 MiB).
	DefaultMaxBodyBytes = 32 << 20

	// EnvSourceDateEpoch pins metadata.generatedAt to a Unix timestamp.
	EnvSourceDateEpoch = "SOURCE_DATE_EPOCH"
)

// Config is the complete kgviz configuration.
type Config struct {
	// Root is the directory all reads and writes are confined to.
	Root string `toml:"root"`

	// Output is the default output file name.
	Output string `toml:"output"`

	// Validate enables the link integrity check.
	Validate bool `toml:"validate"`

	Serve Serve `toml:"serve"`
}

// Serve configures the HTTP service.
type Serve struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
	Metrics      bool   `toml:"metrics"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Root:     ".",
		Output:   DefaultOutput,
		Validate: true,
		Serve: Serve{
			Addr:         DefaultAddr,
			MaxBodyBytes: DefaultMaxBodyBytes,
			Metrics:      true,
		},
	}
}

// Load reads the TOML file at path on top of [Default].
// Unknown keys are rejected so that typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return cfg, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Check()
}

// Discover loads explicit when it is set. Otherwise it loads [Filename] from
// root if that file exists, and falls back to [Default].
func Discover(explicit, root string) (Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}
	if root == "" {
		root = "."
	}
	path := filepath.Join(root, Filename)
	if _, err := os.Stat(path); err != nil {
		cfg := Default()
		cfg.Root = root
		return cfg, "", nil
	}
	cfg, err := Load(path)
	if err == nil && cfg.Root == "." {
		cfg.Root = root
	}
	return cfg, path, err
}

// Check validates field values.
func (c Config) Check() error {
	if c.Root == "" {
		return errors.New(errors.ErrCodeInvalidInput, "root cannot be empty")
	}
	if err := errors.ValidateOutputName(c.Output); err != nil {
		return err
	}
	if c.Serve.Addr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "serve.addr cannot be empty")
	}
	if c.Serve.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "serve.max_body_bytes must be positive, got %d", c.Serve.MaxBodyBytes)
	}
	return nil
}

// GeneratedAt returns the timestamp pinned by SOURCE_DATE_EPOCH, or the zero
// time when the variable is unset or empty.
func GeneratedAt() (time.Time, error) {
	v, ok := os.LookupEnv(EnvSourceDateEpoch)
	if !ok || v == "" {
		return time.Time{}, nil
	}
	secs, err := strconv.ParseInt(v, 10, 64)
	if err != nil || secs < 0 {
		return time.Time{}, errors.New(errors.ErrCodeInvalidInput, "%s must be a non-negative Unix timestamp, got %q", EnvSourceDateEpoch, v)
	}
	return time.Unix(secs, 0).UTC(), nil
}
