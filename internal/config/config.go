// InvoiceMe Organizer - Invoice intake and Drive folder organization
// Copyright 2026 InvoiceMe
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds all application configuration loaded from environment
// variables and an optional YAML config file.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in sensible defaults for all optional settings
//  2. Config File: optional YAML file (config.yaml) for persistent settings
//  3. Environment Variables: override any setting
//
// Config is immutable after Load() and safe for concurrent reads. It is
// constructed once in main() and passed explicitly to collaborators; no
// package reads ambient process state after startup.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Worker   WorkerConfig   `koanf:"worker"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DatabaseConfig holds connection settings for the hosted Postgres store.
//
// Two handles are built from this config:
//   - Admin: service-role credentials, bypasses row-level security.
//     Used by route handlers for all reads and writes.
//   - Anon: restricted credentials. Used only for safe unauthenticated
//     reads (readiness pings). Never used to mutate state.
//
// Environment Variables:
//   - DATABASE_ADMIN_DSN: service-role DSN (required)
//   - DATABASE_ANON_DSN: restricted-role DSN (required)
//   - DATABASE_MAX_CONNS: per-pool connection cap (default: 8)
//   - DATABASE_CONNECT_TIMEOUT: dial timeout (default: 10s)
type DatabaseConfig struct {
	AdminDSN       string        `koanf:"admin_dsn"`
	AnonDSN        string        `koanf:"anon_dsn"`
	MaxConns       int32         `koanf:"max_conns"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
}

// WorkerConfig holds settings for the external document-processing worker.
//
// Environment Variables:
//   - WORKER_BASE_URL: worker service base URL (required)
//   - WORKER_API_TOKEN: shared token sent as x-worker-token (required)
//   - WORKER_TIMEOUT: per-call timeout (default: 30s)
type WorkerConfig struct {
	BaseURL string        `koanf:"base_url"`
	Token   string        `koanf:"api_token"`
	Timeout time.Duration `koanf:"timeout"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - SERVER_HOST: bind address (default: 0.0.0.0)
//   - SERVER_PORT: listen port (default: 8080)
//   - SERVER_WEB_DIR: static page directory (default: ./web)
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	WebDir          string        `koanf:"web_dir"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SecurityConfig holds session and rate-limit settings.
//
// Environment Variables:
//   - AUTH_COOKIE_SECRET: session signing secret, min 32 chars (required)
//   - SESSION_TTL: session lifetime (default: 168h / 7 days)
//   - COOKIE_SECURE: set the Secure cookie flag (default: true)
//   - RATE_LIMIT_REQUESTS / RATE_LIMIT_WINDOW: general API bucket
//   - RATE_LIMIT_LOGIN_REQUESTS / RATE_LIMIT_LOGIN_WINDOW: login bucket
type SecurityConfig struct {
	CookieSecret       string        `koanf:"cookie_secret"`
	SessionTTL         time.Duration `koanf:"session_ttl"`
	CookieSecure       bool          `koanf:"cookie_secure"`
	RateLimitRequests  int           `koanf:"rate_limit_requests"`
	RateLimitWindow    time.Duration `koanf:"rate_limit_window"`
	LoginLimitRequests int           `koanf:"rate_limit_login_requests"`
	LoginLimitWindow   time.Duration `koanf:"rate_limit_login_window"`
	CORSOrigins        []string      `koanf:"cors_origins"`
}

// LoggingConfig holds log output settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: json)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// minCookieSecretLen is the minimum length for the session signing secret.
const minCookieSecretLen = 32

// Validate checks that all required settings are present and well-formed.
// The process fails fast at startup when any are missing.
func (c *Config) Validate() error {
	if c.Database.AdminDSN == "" {
		return fmt.Errorf("DATABASE_ADMIN_DSN is required")
	}
	if c.Database.AnonDSN == "" {
		return fmt.Errorf("DATABASE_ANON_DSN is required")
	}
	if c.Worker.BaseURL == "" {
		return fmt.Errorf("WORKER_BASE_URL is required")
	}
	if u, err := url.Parse(c.Worker.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("WORKER_BASE_URL is not a valid URL: %q", c.Worker.BaseURL)
	}
	if c.Worker.Token == "" {
		return fmt.Errorf("WORKER_API_TOKEN is required")
	}
	if c.Security.CookieSecret == "" {
		return fmt.Errorf("AUTH_COOKIE_SECRET is required")
	}
	if len(c.Security.CookieSecret) < minCookieSecretLen {
		return fmt.Errorf("AUTH_COOKIE_SECRET must be at least %d characters", minCookieSecretLen)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	if c.Security.SessionTTL <= 0 {
		return fmt.Errorf("session TTL must be positive: %s", c.Security.SessionTTL)
	}
	return nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
