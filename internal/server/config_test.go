package server

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/feasibility/pkg/constants"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address == "" {
		t.Fatalf("expected default address, got empty")
	}
	if cfg.UploadSizeBytes() <= 0 {
		t.Fatalf("expected positive default max upload size, got %d", cfg.UploadSizeBytes())
	}
	if cfg.Logging.Level != "" || cfg.Logging.Format != "" || cfg.Logging.OutputFile != "" {
		t.Fatalf("expected empty logging defaults, got %+v", cfg.Logging)
	}
	if cfg.Limits() != DefaultLimits() {
		t.Fatalf("expected default limits, got %+v", cfg.Limits())
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server-config.yaml")

	contents := []byte(`address: 127.0.0.1:9000
maxUploadSize: 2M
maxProjectMonths: 120
logging:
  level: debug
  format: console
  outputFile: /tmp/server.log
`)
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path, nil)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != "127.0.0.1:9000" {
		t.Fatalf("expected address override, got %s", cfg.Address)
	}
	if cfg.UploadSizeBytes() != 2*1024*1024 {
		t.Fatalf("expected max upload override, got %d", cfg.UploadSizeBytes())
	}
	if cfg.Limits().MaxProjectMonths != 120 {
		t.Fatalf("expected project month limit 120, got %d", cfg.Limits().MaxProjectMonths)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected logging level debug, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("expected logging format console, got %s", cfg.Logging.Format)
	}
	if cfg.Logging.OutputFile != "/tmp/server.log" {
		t.Fatalf("expected logging outputFile /tmp/server.log, got %s", cfg.Logging.OutputFile)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		fragment string
	}{
		{"upload size", "maxUploadSize: invalid", "invalid size"},
		{"upload unit", "maxUploadSize: 1TB", "unsupported size unit"},
		{"log level", "logging:\n  level: verbose", "invalid log level"},
		{"log format", "logging:\n  format: xml", "invalid log format"},
		{"yaml", "address: [", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "server-config.yaml")
			if err := os.WriteFile(path, []byte(tt.contents), 0600); err != nil {
				t.Fatalf("failed to write temp config: %v", err)
			}

			_, err := LoadConfig(path, nil)
			if err == nil || !strings.Contains(err.Error(), tt.fragment) {
				t.Fatalf("LoadConfig() error = %v, expected %q", err, tt.fragment)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":       constants.DefaultMaxUploadSizeBytes,
		"512b":   512,
		"256 KB": 256 * 1024,
		"3m":     3 * 1024 * 1024,
	}

	for input, expected := range tests {
		got, err := ParseSize(input)
		if err != nil {
			t.Fatalf("ParseSize(%q) returned error: %v", input, err)
		}
		if got != expected {
			t.Fatalf("ParseSize(%q) = %d, expected %d", input, got, expected)
		}
	}

	for _, input := range []string{"abc", "K", "9223372036854775807K"} {
		if _, err := ParseSize(input); err == nil {
			t.Errorf("ParseSize(%q) expected an error", input)
		}
	}
}

func TestLoadConfigEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server-config.yaml")
	contents := []byte("address: 127.0.0.1:9000\nmaxUploadSize: 2M\nlogging:\n  level: warn\n")
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	env := map[string]string{
		constants.EnvServerAddress:    " 0.0.0.0:9100 ",
		constants.EnvLogLevel:         "debug",
		constants.EnvMaxUploadSize:    "512K",
		constants.EnvMaxProjectMonths: "48",
	}
	lookup := func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}

	cfg, err := LoadConfig(path, lookup)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != "0.0.0.0:9100" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected env to win over the file, got %+v", cfg)
	}
	if limits := cfg.Limits(); limits.MaxUploadBytes != 512*1024 || limits.MaxProjectMonths != 48 {
		t.Fatalf("unexpected limits from env: %+v", limits)
	}

	env = map[string]string{constants.EnvServerAddress: "  "}
	cfg, err = LoadConfig(path, lookup)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != "127.0.0.1:9000" || cfg.Logging.Level != "warn" {
		t.Fatalf("blank or missing env values must not override, got %+v", cfg)
	}

	for key, value := range map[string]string{
		constants.EnvLogLevel:         "loud",
		constants.EnvMaxProjectMonths: "many",
	} {
		env = map[string]string{key: value}
		if _, err := LoadConfig(path, lookup); err == nil {
			t.Errorf("expected %s=%q to fail", key, value)
		}
	}
}
