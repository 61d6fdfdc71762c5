package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type Config struct {
	App struct {
		Port          string
		SessionTTL    time.Duration
		SecureCookies bool
	}
	Postgres PostgresConfig
}

// Load reads configuration from the environment, optionally seeding it
// from a .env file first. Required DB settings fail fast.
func Load(envPath string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{}
	cfg.App.Port = getenvDefault("APP_PORT", "8080")
	cfg.App.SecureCookies = os.Getenv("APP_SECURE_COOKIES") == "true"

	ttl := getenvDefault("APP_SESSION_TTL", "12h")
	sessionTTL, err := time.ParseDuration(ttl)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_SESSION_TTL %q: %w", ttl, err)
	}
	cfg.App.SessionTTL = sessionTTL

	for _, req := range []struct {
		key  string
		dest *string
	}{
		{"DB_HOST", &cfg.Postgres.Host},
		{"DB_PORT", &cfg.Postgres.Port},
		{"DB_USER", &cfg.Postgres.User},
		{"DB_PASSWORD", &cfg.Postgres.Password},
		{"DB_NAME", &cfg.Postgres.DBName},
	} {
		*req.dest = os.Getenv(req.key)
		if *req.dest == "" {
			return nil, fmt.Errorf("%s is required", req.key)
		}
	}

	cfg.Postgres.SSLMode = getenvDefault("DB_SSLMODE", "disable")
	cfg.Postgres.MaxConns = 10
	cfg.Postgres.MinConns = 2
	cfg.Postgres.MaxConnLifetime = time.Hour

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
