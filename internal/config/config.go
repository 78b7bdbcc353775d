// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the blog configuration from OBLOG_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata" // OBLOG_TIME_ZONE must resolve on hosts without zoneinfo

	"github.com/caarlos0/env/v11"
)

// Database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Env        string `env:"OBLOG_ENV" envDefault:"development"`
	LogLevel   string `env:"OBLOG_LOG_LEVEL" envDefault:"info"`
	ServerHost string `env:"OBLOG_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"OBLOG_SERVER_PORT" envDefault:"8080"`
	SecretKey  string `env:"OBLOG_SECRET_KEY,required"`

	// Database configuration
	DBDriver    string `env:"OBLOG_DB_DRIVER" envDefault:"sqlite"`
	DBPath      string `env:"OBLOG_DB_PATH" envDefault:"./data/oblog.db"`
	DatabaseURL string `env:"OBLOG_DATABASE_URL"` // PostgreSQL DSN

	// Locale and search
	TimeZone       string `env:"OBLOG_TIME_ZONE" envDefault:"UTC"`
	SearchLanguage string `env:"OBLOG_SEARCH_LANGUAGE" envDefault:"english"`

	// Mail configuration; an empty SMTP host logs mails instead of sending them
	SMTPHost     string `env:"OBLOG_SMTP_HOST"`
	SMTPPort     int    `env:"OBLOG_SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"OBLOG_SMTP_USERNAME"`
	SMTPPassword string `env:"OBLOG_SMTP_PASSWORD"`
	MailFrom     string `env:"OBLOG_MAIL_FROM" envDefault:"admin"`
	MailDomain   string `env:"OBLOG_MAIL_DOMAIN" envDefault:"localhost"`

	// Seeding configuration
	DoSeed   bool `env:"OBLOG_DO_SEED" envDefault:"false"`
	DemoMode bool `env:"OBLOG_DEMO_MODE" envDefault:"false"`

	location *time.Location
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UsePostgres returns true if the PostgreSQL backend is configured.
func (c Config) UsePostgres() bool {
	return c.DBDriver == DriverPostgres
}

// SMTPEnabled returns true if share mails go to an SMTP server.
func (c Config) SMTPEnabled() bool {
	return c.SMTPHost != ""
}

// Location returns the site time zone. Publish dates in URLs are calendar
// dates in this zone.
func (c Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// MinSecretKeyLength is the minimum required length for the secret key.
// The CSRF protection derives its 32-byte key from it.
const MinSecretKeyLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SecretKey) < MinSecretKeyLength {
		return nil, fmt.Errorf("OBLOG_SECRET_KEY must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSecretKeyLength, len(cfg.SecretKey))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SecretKey == weak {
			return nil, fmt.Errorf("OBLOG_SECRET_KEY is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SecretKey) {
		slog.Warn("OBLOG_SECRET_KEY has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	switch cfg.DBDriver {
	case DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("OBLOG_DATABASE_URL is required when OBLOG_DB_DRIVER=%s", DriverPostgres)
		}
	default:
		return nil, fmt.Errorf("OBLOG_DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, cfg.DBDriver)
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("loading OBLOG_TIME_ZONE %q: %w", cfg.TimeZone, err)
	}
	cfg.location = loc

	if strings.TrimSpace(cfg.MailFrom) == "" {
		return nil, fmt.Errorf("OBLOG_MAIL_FROM must not be empty")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	for _, class := range []string{
		"abcdefghijklmnopqrstuvwxyz",
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		"0123456789",
		"!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\",
	} {
		if strings.ContainsAny(s, class) {
			charTypes++
		}
	}
	return charTypes >= 3
}
