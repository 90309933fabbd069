// Package config reads settings from the environment, optionally seeded
// from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

type Config struct {
	Addr       string
	Store      string
	DBPath     string
	AuthSecret string
	LogLevel   slog.Level
	TokenTTL   time.Duration

	// Client side.
	ServerURL string
	Token     string
}

// Load reads the given env files (".env" when none are named) and then the
// process environment. Missing files are skipped; variables already set in
// the environment win over file values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	cfg := &Config{
		Addr:       getenv("TODO_ADDR", ":8080"),
		Store:      getenv("TODO_STORE", StoreMemory),
		DBPath:     getenv("TODO_DB_PATH", "./tasks.db"),
		AuthSecret: os.Getenv("TODO_AUTH_SECRET"),
		ServerURL:  strings.TrimRight(getenv("TODO_SERVER_URL", "http://localhost:8080"), "/"),
		Token:      os.Getenv("TODO_TOKEN"),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getenv("TODO_LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("TODO_LOG_LEVEL: %w", err)
	}

	ttl, err := time.ParseDuration(getenv("TODO_TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("TODO_TOKEN_TTL: %w", err)
	}
	cfg.TokenTTL = ttl

	return cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.AuthSecret == "" {
		return errors.New("TODO_AUTH_SECRET is not set")
	}
	switch c.Store {
	case StoreMemory:
	case StoreSQLite:
		if c.DBPath == "" {
			return errors.New("TODO_DB_PATH is required for the sqlite store")
		}
	default:
		return fmt.Errorf("unknown TODO_STORE %q (want %s or %s)", c.Store, StoreMemory, StoreSQLite)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
