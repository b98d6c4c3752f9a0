package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9090"
database:
  host: localhost
  dbname: sprint
storage:
  type: minio
`)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("driver = %q, want mysql", cfg.Database.Driver)
	}
	if cfg.JWT.ExpireTime != 24*time.Hour {
		t.Errorf("jwt expiry = %v, want 24h", cfg.JWT.ExpireTime)
	}
	if cfg.Notification.LowAdherenceThreshold != 60 {
		t.Errorf("threshold = %d, want 60", cfg.Notification.LowAdherenceThreshold)
	}
	if cfg.ApplicationStore.Type != "memory" || cfg.ApplicationStore.Key != "applications" {
		t.Errorf("application store = %+v", cfg.ApplicationStore)
	}
	if cfg.Log.File != "logs/identity-sprint.log" || cfg.Log.MaxBackups != 5 || !cfg.Log.Compress {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, `
database:
  driver: mysql
storage:
  type: minio
`)
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("COACH_EMAIL", "coach@example.com")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("driver = %q, want postgres", cfg.Database.Driver)
	}
	if cfg.Notification.CoachEmail != "coach@example.com" {
		t.Errorf("coach email = %q", cfg.Notification.CoachEmail)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Server:           ServerConfig{Mode: "debug"},
			Database:         DatabaseConfig{Driver: "mysql"},
			ApplicationStore: ApplicationStoreConfig{Type: "memory"},
			Notification:     NotificationConfig{LowAdherenceThreshold: 60},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errHas string
	}{
		{"valid", func(*Config) {}, ""},
		{"short secret in release", func(c *Config) { c.Server.Mode = "release"; c.JWT.Secret = "short" }, "too short"},
		{"unknown mode", func(c *Config) { c.Server.Mode = "prod" }, "server.mode"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "sqlite" }, "database driver"},
		{"redis store without redis", func(c *Config) { c.ApplicationStore.Type = "redis" }, "redis is not enabled"},
		{"threshold out of range", func(c *Config) { c.Notification.LowAdherenceThreshold = 120 }, "0-100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.Validate()
			if tt.errHas == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errHas) {
				t.Fatalf("error = %v, want it to mention %q", err, tt.errHas)
			}
		})
	}
}
