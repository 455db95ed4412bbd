package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Config holds process configuration loaded from the environment.
type Config struct {
	DBPath      string // SQLite database file
	HTTPAddr    string // listen address for the JSON API
	ResendKey   string // empty disables real email delivery
	EmailFrom   string // sender address for guardian digests
	Environment string // development | production
}

// Load reads configuration from a .env file (if present) and the
// environment. Missing optional values fall back to development defaults.
func Load() *Config {
	if err := godotenv.Load(".env"); err == nil {
		slog.Info("config_event", "event", "dotenv_loaded")
	}

	cfg := &Config{
		DBPath:      os.Getenv("ROLLCALL_DB_PATH"),
		HTTPAddr:    os.Getenv("ROLLCALL_ADDR"),
		ResendKey:   os.Getenv("ROLLCALL_RESEND_KEY"),
		EmailFrom:   os.Getenv("ROLLCALL_EMAIL_FROM"),
		Environment: os.Getenv("ROLLCALL_ENV"),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = "rollcall.db"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.EmailFrom == "" {
		cfg.EmailFrom = "Rollcall <noreply@rollcall.local>"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	return cfg
}

// IsProduction reports whether the process runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
