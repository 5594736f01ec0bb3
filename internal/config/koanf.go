// InvoiceMe Organizer - Invoice intake and Drive folder organization
// Copyright 2026 InvoiceMe
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/invoiceme/config.yaml",
	"/etc/invoiceme/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all optional settings defaulted.
// Required settings (DSNs, worker URL/token, cookie secret) stay empty and
// are caught by Validate.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			MaxConns:       8,
			ConnectTimeout: 10 * time.Second,
		},
		Worker: WorkerConfig{
			Timeout: 30 * time.Second,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			WebDir:          "./web",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			SessionTTL:         7 * 24 * time.Hour,
			CookieSecure:       true,
			RateLimitRequests:  100,
			RateLimitWindow:    time.Minute,
			LoginLimitRequests: 5,
			LoginLimitWindow:   5 * time.Minute,
			CORSOrigins:        []string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the application configuration from defaults, an optional
// YAML config file, and environment variables (highest priority), then
// validates it. Returns an error on any missing or malformed required
// value so the process fails fast at startup.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: optional config file
	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Slice fields arrive from env as comma-separated strings.
	if err := splitSliceField(k, "security.cors_origins"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// splitSliceField converts a comma-separated string value at path into a
// string slice so it unmarshals into []string fields.
func splitSliceField(k *koanf.Koanf, path string) error {
	v := k.Get(path)
	s, ok := v.(string)
	if !ok {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if err := k.Set(path, parts); err != nil {
		return fmt.Errorf("failed to split %s: %w", path, err)
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf paths.
// Unmapped variables are dropped so unrelated process environment does not
// leak into the config tree.
func envTransformFunc(key string) string {
	mappings := map[string]string{
		"DATABASE_ADMIN_DSN":       "database.admin_dsn",
		"DATABASE_ANON_DSN":        "database.anon_dsn",
		"DATABASE_MAX_CONNS":       "database.max_conns",
		"DATABASE_CONNECT_TIMEOUT": "database.connect_timeout",

		"WORKER_BASE_URL":  "worker.base_url",
		"WORKER_API_TOKEN": "worker.api_token",
		"WORKER_TIMEOUT":   "worker.timeout",

		"SERVER_HOST":             "server.host",
		"SERVER_PORT":             "server.port",
		"SERVER_WEB_DIR":          "server.web_dir",
		"SERVER_READ_TIMEOUT":     "server.read_timeout",
		"SERVER_WRITE_TIMEOUT":    "server.write_timeout",
		"SERVER_SHUTDOWN_TIMEOUT": "server.shutdown_timeout",

		"AUTH_COOKIE_SECRET":        "security.cookie_secret",
		"SESSION_TTL":               "security.session_ttl",
		"COOKIE_SECURE":             "security.cookie_secure",
		"RATE_LIMIT_REQUESTS":       "security.rate_limit_requests",
		"RATE_LIMIT_WINDOW":         "security.rate_limit_window",
		"RATE_LIMIT_LOGIN_REQUESTS": "security.rate_limit_login_requests",
		"RATE_LIMIT_LOGIN_WINDOW":   "security.rate_limit_login_window",
		"CORS_ORIGINS":              "security.cors_origins",

		"LOG_LEVEL":  "logging.level",
		"LOG_FORMAT": "logging.format",
	}

	if path, ok := mappings[strings.ToUpper(key)]; ok {
		return path
	}
	return ""
}
