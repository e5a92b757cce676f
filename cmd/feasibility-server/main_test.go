package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/feasibility/pkg/constants"
	"go.uber.org/zap"
)

// clearEnv unsets the server variables for the test and restores them after.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		constants.EnvServerAddress,
		constants.EnvLogLevel,
		constants.EnvMaxUploadSize,
		constants.EnvMaxProjectMonths,
	} {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestLoadServerConfigMissingEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	configPath := writeFile(t, dir, "server-config.yaml", "address: 127.0.0.1:9000\n")

	cfg, err := loadServerConfig(configPath, filepath.Join(dir, ".env"))
	if err != nil {
		t.Fatalf("loadServerConfig() error = %v", err)
	}
	if cfg.Address != "127.0.0.1:9000" {
		t.Errorf("expected the file address, got %s", cfg.Address)
	}
}

func TestLoadServerConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "server-config.yaml", "address: 127.0.0.1:9000\nmaxProjectMonths: 120\n")
	envPath := writeFile(t, dir, ".env", constants.EnvServerAddress+"=127.0.0.1:9200\n"+
		constants.EnvMaxProjectMonths+"=60\n")

	tests := []struct {
		name          string
		processEnv    map[string]string
		expectAddress string
		expectMonths  int
	}{
		{"dotenv over file", nil, "127.0.0.1:9200", 60},
		{"process env over dotenv", map[string]string{constants.EnvServerAddress: "127.0.0.1:9300"}, "127.0.0.1:9300", 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.processEnv {
				t.Setenv(key, value)
			}

			cfg, err := loadServerConfig(configPath, envPath)
			if err != nil {
				t.Fatalf("loadServerConfig() error = %v", err)
			}
			if cfg.Address != tt.expectAddress {
				t.Errorf("address = %s, expected %s", cfg.Address, tt.expectAddress)
			}
			if cfg.MaxProjectMonths != tt.expectMonths {
				t.Errorf("maxProjectMonths = %d, expected %d", cfg.MaxProjectMonths, tt.expectMonths)
			}
		})
	}
}

func TestLoadServerConfigUnreadableEnvFile(t *testing.T) {
	clearEnv(t)
	// A directory cannot be parsed as a dotenv file.
	if _, err := loadServerConfig("", t.TempDir()); err == nil {
		t.Fatal("expected an error for an unreadable env file")
	}
}

func TestNewHTTPServer(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	configPath := writeFile(t, dir, "server-config.yaml", "address: 127.0.0.1:9000\nmaxProjectMonths: 12\n")

	cfg, err := loadServerConfig(configPath, "")
	if err != nil {
		t.Fatalf("loadServerConfig() error = %v", err)
	}
	srv := newHTTPServer(cfg, zap.NewNop())

	if srv.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %s, expected 127.0.0.1:9000", srv.Addr)
	}

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), version) {
		t.Errorf("version endpoint returned %d: %s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get(constants.RequestIDHeader) == "" {
		t.Error("expected a request id header")
	}
}
