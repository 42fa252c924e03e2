package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ScoringDesk/internal/endpoint"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DESK_CONTEXT", "BACKEND_URL", "BACKEND_TIMEOUT", "HTTPS_PROXY",
		"CRON_REFRESH", "SESSION_FILE", "SQLITE_PATH", "DEVSERVER_ADDR", "DEVSERVER_FIXTURES"} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.ExecutionContext() != endpoint.ServerFacing {
		t.Errorf("expected server context by default, got %v", cfg.ExecutionContext())
	}
	if cfg.Backend.ServerURL != "" {
		t.Errorf("expected no server url by default, got %q", cfg.Backend.ServerURL)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("unexpected timeout %v", cfg.Timeout())
	}
	if cfg.Schedule.RefreshCron != "0 */5 * * * *" {
		t.Errorf("unexpected cron %q", cfg.Schedule.RefreshCron)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "desk.yaml")
	yamlText := `
backend:
  context: client
  server_url: http://from-file:8080
  timeout_seconds: 5
database:
  sqlite_path: /tmp/desk.db
`
	if err := os.WriteFile(path, []byte(yamlText), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BACKEND_URL", "http://from-env:9090")
	t.Setenv("BACKEND_TIMEOUT", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ExecutionContext() != endpoint.ClientFacing {
		t.Errorf("expected client context, got %v", cfg.ExecutionContext())
	}
	if cfg.Backend.ServerURL != "http://from-env:9090" {
		t.Errorf("env should override file, got %q", cfg.Backend.ServerURL)
	}
	if cfg.Backend.TimeoutSeconds != 7 {
		t.Errorf("expected timeout 7, got %d", cfg.Backend.TimeoutSeconds)
	}
	if cfg.Database.SQLitePath != "/tmp/desk.db" {
		t.Errorf("unexpected sqlite path %q", cfg.Database.SQLitePath)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("backend: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	cfg, _ := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	bad := *cfg
	bad.Backend.Context = "edge"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown context")
	}

	bad = *cfg
	bad.Backend.TimeoutSeconds = -1
	if err := bad.Validate(); err == nil {
		t.Error("expected error for negative timeout")
	}
}
