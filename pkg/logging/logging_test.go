package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input     string
		expected  zapcore.Level
		expectErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"verbose", zapcore.InfoLevel, true},
		{"DEBUG", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Errorf("ParseLevel(%q) expected error but got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q) unexpected error = %v", tt.input, err)
			}
			if level != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, level, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		override  string
		expected  zapcore.Level
		expectErr bool
	}{
		{"Defaults", Config{}, "", zapcore.InfoLevel, false},
		{"Console debug", Config{Level: "debug", Format: "console"}, "", zapcore.DebugLevel, false},
		{"Override wins", Config{Level: "debug", Format: "json"}, "error", zapcore.ErrorLevel, false},
		{"Invalid level", Config{Level: "loud"}, "", zapcore.InfoLevel, true},
		{"Invalid override", Config{Level: "info"}, "loud", zapcore.InfoLevel, true},
		{"Invalid format", Config{Format: "xml"}, "", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg, tt.override)
			if tt.expectErr {
				if err == nil {
					t.Errorf("New() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error = %v", err)
			}
			if !logger.Core().Enabled(tt.expected) {
				t.Errorf("level %v should be enabled", tt.expected)
			}
			if tt.expected > zapcore.DebugLevel && logger.Core().Enabled(tt.expected-1) {
				t.Errorf("level %v should be disabled", tt.expected-1)
			}
		})
	}
}

func TestNewWithOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "feasibility.log")

	logger, err := New(Config{Level: "info", Format: "json", OutputFile: path}, "")
	if err != nil {
		t.Fatalf("New() unexpected error = %v", err)
	}
	logger.Info("written to file", zap.String("op", "logging.TestNewWithOutputFile"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") || !strings.Contains(string(data), "\"timestamp\"") {
		t.Errorf("unexpected log contents: %s", data)
	}
}

func TestNamed(t *testing.T) {
	if Named(nil, "server") == nil {
		t.Fatal("Named(nil) should return a no-op logger")
	}

	logger := Named(zap.NewExample(), "server")
	if logger == nil {
		t.Fatal("Named returned nil")
	}
}
