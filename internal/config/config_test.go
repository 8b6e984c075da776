package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Catalog.Path != "equipment.db" {
		t.Errorf("catalog path = %q", cfg.Catalog.Path)
	}
	if cfg.Library.PostgresURL != "" {
		t.Errorf("library should be disabled by default, got %q", cfg.Library.PostgresURL)
	}
}

func TestFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: "9090"
catalog:
  path: /data/equipment.db
auth:
  session_ttl_hours: 48
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Catalog.Path != "/data/equipment.db" {
		t.Errorf("catalog path = %q", cfg.Catalog.Path)
	}
	if cfg.Auth.SessionTTLHours != 48 {
		t.Errorf("session ttl = %d, want 48", cfg.Auth.SessionTTLHours)
	}
	// Untouched sections keep their defaults.
	if cfg.UserDB.Path != "users.db" {
		t.Errorf("user db path = %q, want default", cfg.UserDB.Path)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("MECHLAB_CATALOG_PATH", "/env/equipment.db")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("port = %q, want env override 7070", cfg.Server.Port)
	}
	if cfg.Catalog.Path != "/env/equipment.db" {
		t.Errorf("catalog path = %q, want env override", cfg.Catalog.Path)
	}
}

func TestMissingFileFails(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("explicit missing config file must fail")
	}
}
