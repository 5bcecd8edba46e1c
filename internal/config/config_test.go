package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 8080
database:
  path: "rpecalc.db"
auth:
  api_key: "test-key-123"
engine:
  corrected_max_reps: false
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Path != "rpecalc.db" {
		t.Errorf("database.path = %q, want %q", cfg.Database.Path, "rpecalc.db")
	}
	if cfg.Auth.APIKey != "test-key-123" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "test-key-123")
	}
	if cfg.Engine.CorrectedMaxReps {
		t.Error("engine.corrected_max_reps = true, want false")
	}
}

// TestEnvOverride verifies that RPECALC_ env vars take precedence over YAML values.
// This ensures production deployments can override config via environment.
func TestEnvOverride(t *testing.T) {
	t.Setenv("RPECALC_SERVER_PORT", "9999")
	t.Setenv("RPECALC_DB_PATH", "/data/override.db")
	t.Setenv("RPECALC_AUTH_API_KEY", "env-key")
	t.Setenv("RPECALC_ENGINE_CORRECTED_MAX_REPS", "true")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("server.port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Database.Path != "/data/override.db" {
		t.Errorf("database.path = %q, want %q", cfg.Database.Path, "/data/override.db")
	}
	if cfg.Auth.APIKey != "env-key" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "env-key")
	}
	if !cfg.Engine.CorrectedMaxReps {
		t.Error("engine.corrected_max_reps = false, want true (env override)")
	}
	// Unchanged fields should keep YAML values
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
}

// TestValidationMissingPort verifies that missing required fields produce a clear error.
// Prevents starting the server with incomplete configuration.
func TestValidationMissingPort(t *testing.T) {
	yaml := `
server:
  host: "0.0.0.0"
database:
  path: "rpecalc.db"
`
	_, err := Load(writeTemp(t, yaml))
	if err == nil {
		t.Fatal("expected validation error for missing port")
	}
}

// TestValidationMissingDBPath verifies that a missing database path is rejected.
func TestValidationMissingDBPath(t *testing.T) {
	yaml := `
server:
  port: 8080
database: {}
`
	_, err := Load(writeTemp(t, yaml))
	if err == nil {
		t.Fatal("expected validation error for missing database.path")
	}
}

// TestValidationTailscaleHostname verifies tailscale mode requires a hostname.
func TestValidationTailscaleHostname(t *testing.T) {
	yaml := `
server:
  port: 8080
database:
  path: "rpecalc.db"
tailscale:
  enabled: true
`
	_, err := Load(writeTemp(t, yaml))
	if err == nil {
		t.Fatal("expected validation error for missing tailscale.hostname")
	}
}

// TestAPIKeyOptional verifies an empty api_key loads fine; auth is opt-in.
func TestAPIKeyOptional(t *testing.T) {
	yaml := `
server:
  port: 8080
database:
  path: "rpecalc.db"
`
	cfg, err := Load(writeTemp(t, yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Auth.APIKey != "" {
		t.Errorf("auth.api_key = %q, want empty", cfg.Auth.APIKey)
	}
}

// TestLoadMissingFile verifies that a missing config file returns a clear error.
func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
