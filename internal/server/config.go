package server

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/iwvelando/feasibility/internal/config"
	"github.com/iwvelando/feasibility/pkg/constants"
	"github.com/iwvelando/feasibility/pkg/logging"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the feasibility HTTP server.
type Config struct {
	Address          string               `yaml:"address"`
	MaxUploadSize    string               `yaml:"maxUploadSize"`
	MaxProjectMonths int                  `yaml:"maxProjectMonths"`
	Logging          config.LoggingConfig `yaml:"logging"`
	uploadSizeBytes  int64
}

// Limits bounds the work a single request may ask of the handler.
type Limits struct {
	MaxUploadBytes   int64
	MaxProjectMonths int
}

// DefaultLimits returns the limits used when a server config sets none.
func DefaultLimits() Limits {
	return Limits{
		MaxUploadBytes:   constants.DefaultMaxUploadSizeBytes,
		MaxProjectMonths: constants.MaxProjectLengthMonths,
	}
}

// LoadConfig builds the server configuration in order of precedence:
// defaults, then the YAML file at path (a missing file is not an error),
// then FEASIBILITY_* variables read through lookup. The logging block is
// checked so a bad level or format fails here rather than at startup.
func LoadConfig(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{Address: constants.DefaultServerAddress}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read server config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse server config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		return nil
	}
	env := func(key string) (string, bool) {
		value, ok := lookup(key)
		value = strings.TrimSpace(value)
		return value, ok && value != ""
	}

	if value, ok := env(constants.EnvServerAddress); ok {
		c.Address = value
	}
	if value, ok := env(constants.EnvLogLevel); ok {
		c.Logging.Level = value
	}
	if value, ok := env(constants.EnvMaxUploadSize); ok {
		c.MaxUploadSize = value
	}
	if value, ok := env(constants.EnvMaxProjectMonths); ok {
		months, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", constants.EnvMaxProjectMonths, value, err)
		}
		c.MaxProjectMonths = months
	}
	return nil
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}

	size, err := ParseSize(c.MaxUploadSize)
	if err != nil {
		return err
	}
	if size <= 0 {
		size = constants.DefaultMaxUploadSizeBytes
	}
	c.uploadSizeBytes = size

	if c.MaxProjectMonths <= 0 {
		c.MaxProjectMonths = constants.MaxProjectLengthMonths
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid server logging config: %w", err)
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("invalid server logging config: invalid log format: %s", c.Logging.Format)
	}
	return nil
}

// UploadSizeBytes returns the configured upload size in bytes.
func (c *Config) UploadSizeBytes() int64 {
	return c.uploadSizeBytes
}

// Limits returns the request limits for NewHandler.
func (c *Config) Limits() Limits {
	return Limits{MaxUploadBytes: c.uploadSizeBytes, MaxProjectMonths: c.MaxProjectMonths}
}

var sizeUnits = map[string]int64{
	"": 1, "B": 1,
	"K": 1 << 10, "KB": 1 << 10,
	"M": 1 << 20, "MB": 1 << 20,
	"G": 1 << 30, "GB": 1 << 30,
}

// ParseSize converts a byte string such as "256K" or "10M" into bytes. An
// empty string yields the default upload size.
func ParseSize(value string) (int64, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	split := strings.IndexFunc(trimmed, func(r rune) bool { return !unicode.IsDigit(r) })
	if split == -1 {
		split = len(trimmed)
	}
	if split == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}

	unit := strings.TrimSpace(trimmed[split:])
	multiplier, ok := sizeUnits[unit]
	if !ok {
		return 0, fmt.Errorf("unsupported size unit %q", unit)
	}

	n, err := strconv.ParseInt(trimmed[:split], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}
	if n > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return n * multiplier, nil
}
