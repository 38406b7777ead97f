// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"

	"github.com/JonMunkholm/sheetfetch/internal/core"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Source   SourceConfig
	Reformat ReformatConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 3000)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"3000"`

	// ReadTimeout is the maximum duration for reading the request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing the response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`

	// MaxConcurrentFetches caps parallel source requests (default: 8)
	MaxConcurrentFetches int `env:"SERVER_MAX_CONCURRENT_FETCHES" default:"8"`

	// FetchWait is how long a request waits for a fetch slot (default: 10s)
	FetchWait time.Duration `env:"SERVER_FETCH_WAIT" default:"10s"`
}

// SourceConfig describes where the CSV document comes from.
type SourceConfig struct {
	// URL is the published CSV location. Not required at load time: a
	// missing URL is reported by the fetcher on every run.
	URL string `env:"SPREADSHEET_URL" envAlt:"SOURCE_URL"`

	// Timeout bounds one fetch, including reading the body (default: 30s)
	Timeout time.Duration `env:"SOURCE_TIMEOUT" default:"30s"`

	// MaxBodySize is the largest accepted document in bytes (default: 32MB)
	MaxBodySize int64 `env:"SOURCE_MAX_BODY_SIZE" default:"33554432"`

	// UserAgent is sent with every fetch
	UserAgent string `env:"SOURCE_USER_AGENT" default:"sheetfetch/1.0"`
}

// ReformatConfig controls how rows are folded into the output mapping.
type ReformatConfig struct {
	// TrackSupported adds the list of non-key columns to the output (default: false)
	TrackSupported bool `env:"TRACK_SUPPORTED" default:"false"`

	// SupportedField is the reserved key for the column list (default: SUPPORTED)
	SupportedField string `env:"SUPPORTED_FIELD" default:"SUPPORTED"`

	// RequireKeyColumn rejects documents without an empty header (default: false)
	RequireKeyColumn bool `env:"REQUIRE_KEY_COLUMN" default:"false"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// Headers enables nosniff/frame/referrer response headers (default: true)
	Headers bool `env:"SECURITY_HEADERS_ENABLED" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// FetcherConfig converts the source settings for core.NewHTTPFetcher.
func (c *SourceConfig) FetcherConfig() core.FetcherConfig {
	return core.FetcherConfig{
		URL:         c.URL,
		Timeout:     c.Timeout,
		MaxBodySize: c.MaxBodySize,
		UserAgent:   c.UserAgent,
	}
}

// Options converts the reformat settings for core.NewReformatter.
func (c *ReformatConfig) Options() core.ReformatOptions {
	return core.ReformatOptions{
		TrackSupported:   c.TrackSupported,
		SupportedField:   c.SupportedField,
		RequireKeyColumn: c.RequireKeyColumn,
	}
}
