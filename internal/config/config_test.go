package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TEN99_CONFIG_FILE", "")
	t.Setenv("API_PORT", "")
	t.Setenv("SURREAL_URL", "")
	t.Setenv("MAIL_FROM", "")
	t.Setenv("PUBLIC_BASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.APIPort != "8080" {
		t.Fatalf("expected default api port 8080, got %q", cfg.APIPort)
	}
	if cfg.SurrealURL != "ws://localhost:8000/rpc" {
		t.Fatalf("expected default surreal url, got %q", cfg.SurrealURL)
	}
	if cfg.MailFrom != "noreply@ten99.app" {
		t.Fatalf("expected default sender, got %q", cfg.MailFrom)
	}
	if cfg.PublicBaseURL != "https://ten99.app/shared/job-file" {
		t.Fatalf("expected default public base url, got %q", cfg.PublicBaseURL)
	}
	if cfg.SessionTTLHours != 24 {
		t.Fatalf("expected default session ttl 24h, got %d", cfg.SessionTTLHours)
	}
}

func TestLoadReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ten99.yaml")
	contents := "API_PORT: \"9999\"\nNATS_SUBJECT: proposals.test\nSESSION_TTL_HOURS: \"48\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("TEN99_CONFIG_FILE", path)
	t.Setenv("API_PORT", "")
	t.Setenv("NATS_SUBJECT", "")
	t.Setenv("SESSION_TTL_HOURS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIPort != "9999" {
		t.Fatalf("expected file port 9999, got %q", cfg.APIPort)
	}
	if cfg.NATSSubject != "proposals.test" {
		t.Fatalf("expected file subject, got %q", cfg.NATSSubject)
	}
	if cfg.SessionTTLHours != 48 {
		t.Fatalf("expected file ttl 48, got %d", cfg.SessionTTLHours)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ten99.yaml")
	if err := os.WriteFile(path, []byte("API_PORT: \"9999\"\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("TEN99_CONFIG_FILE", path)
	t.Setenv("API_PORT", "7777")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIPort != "7777" {
		t.Fatalf("environment must win over file, got %q", cfg.APIPort)
	}
}

func TestLoadRejectsUnreadableFile(t *testing.T) {
	t.Setenv("TEN99_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
