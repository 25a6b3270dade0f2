package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path == "" {
			t.Error("expected default database path to be set")
		}
		if config.Server.Port == 0 {
			t.Error("expected default server port to be set")
		}
		if config.Auth.Superuser == "" {
			t.Error("expected default superuser to be set")
		}
		if len(config.Auth.Users) == 0 {
			t.Error("expected default account table to be populated")
		}
		if err := config.Validate(); err != nil {
			t.Errorf("default config should validate: %v", err)
		}
	})

	t.Run("Addr", func(t *testing.T) {
		sc := ServerConfig{Host: "127.0.0.1", Port: 8000}
		if got := sc.Addr(); got != "127.0.0.1:8000" {
			t.Errorf("expected 127.0.0.1:8000, got %s", got)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*Config)
		}{
			{"missing secret", func(c *Config) { c.Auth.Secret = "" }},
			{"no accounts", func(c *Config) { c.Auth.Users = nil }},
			{"missing database path", func(c *Config) { c.Database.Path = "" }},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				config := DefaultConfig()
				tc.mutate(config)

				err := config.Validate()
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")

		content := `[database]
path = "catalogue.db"

[server]
host = "0.0.0.0"
port = 9000

[auth]
secret = "s3cret"
superuser = "root"

[[auth.users]]
username = "root"
password = "root-pass"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "catalogue.db" {
			t.Errorf("expected database path catalogue.db, got %s", config.Database.Path)
		}
		if config.Server.Port != 9000 {
			t.Errorf("expected port 9000, got %d", config.Server.Port)
		}
		if config.Auth.Superuser != "root" {
			t.Errorf("expected superuser root, got %s", config.Auth.Superuser)
		}
		if len(config.Auth.Users) != 1 || config.Auth.Users[0].Username != "root" {
			t.Errorf("expected one root account, got %+v", config.Auth.Users)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("created config should load: %v", err)
		}
		if err := config.Validate(); err != nil {
			t.Errorf("created config should validate: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when config file already exists")
		}
	})
}
