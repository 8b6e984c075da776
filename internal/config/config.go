// Package config loads server configuration from an optional YAML file with
// environment-variable overrides, so a bare deployment can run on env vars
// alone.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Catalog CatalogConfig `yaml:"catalog"`
	UserDB  UserDBConfig  `yaml:"user_db"`
	Library LibraryConfig `yaml:"library"`
	Auth    AuthConfig    `yaml:"auth"`
}

type ServerConfig struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type CatalogConfig struct {
	// Path to the read-only equipment catalog database.
	Path string `yaml:"path"`
}

type UserDBConfig struct {
	Path string `yaml:"path"`
}

type LibraryConfig struct {
	// PostgresURL is the canonical unit library. Empty disables the
	// library endpoints; the editor works without it.
	PostgresURL string `yaml:"postgres_url"`
}

type AuthConfig struct {
	GoogleClientID     string `yaml:"google_client_id"`
	GoogleClientSecret string `yaml:"google_client_secret"`
	RedirectURL        string `yaml:"redirect_url"`
	SessionTTLHours    int    `yaml:"session_ttl_hours"`
}

// Default returns the configuration a bare local run uses.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
			AllowedOrigins: []string{
				"http://localhost:5173",
				"http://localhost:8080",
			},
		},
		Catalog: CatalogConfig{Path: "equipment.db"},
		UserDB:  UserDBConfig{Path: "users.db"},
		Auth:    AuthConfig{SessionTTLHours: 24 * 7},
	}
}

// Load builds the effective configuration: defaults, then the YAML file if
// one is given, then environment variables on top.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config YAML: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&c.Server.Port, "PORT")
	setString(&c.Catalog.Path, "MECHLAB_CATALOG_PATH")
	setString(&c.UserDB.Path, "MECHLAB_USER_DB_PATH")
	setString(&c.Library.PostgresURL, "DATABASE_URL")
	setString(&c.Auth.GoogleClientID, "GOOGLE_CLIENT_ID")
	setString(&c.Auth.GoogleClientSecret, "GOOGLE_CLIENT_SECRET")
	setString(&c.Auth.RedirectURL, "OAUTH_REDIRECT_URL")
}
