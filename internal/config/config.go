// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
	"os"
	"strings"
	"time"
)

// Default values applied to zero fields after all sources are merged.
const (
	DefaultProviderKind       = ProviderSimulated
	DefaultFailureRate        = 0.1
	DefaultConnectFailureRate = 0.05
	DefaultMinFetchDelay      = time.Second
	DefaultMaxFetchDelay      = 3 * time.Second
	DefaultConnectDelay       = 500 * time.Millisecond
	DefaultPermissionDelay    = time.Second
	DefaultProviderTimeout    = 10 * time.Second
	DefaultDSN                = "memory"
	DefaultHTTPAddress        = "localhost:8080"
	DefaultSyncInterval       = 5 * time.Minute
	DefaultHistoryLimit       = 20
	DefaultTokenIssuer        = "wear-health-sync"
	ProviderSimulated         = "simulated"
	ProviderHTTP              = "http"
)

// StructuredConfig is the top-level configuration container for the
// wear-health-sync service. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-level settings: version, logging and API auth.
	App App `envPrefix:"APP_"`

	// Provider selects and tunes the device-data source.
	Provider Provider `envPrefix:"PROVIDER_"`

	// Storage holds the record store connection settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the control API listen address.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds the sync scheduling parameters.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version reported by /api/version/.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// LogFile, when set, redirects logs from stdout to this file.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// TokenSignKey enables bearer-JWT protection of the control API when
	// non-empty. Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim of control API tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`
}

// Provider configures the device-data source.
type Provider struct {
	// Kind is "simulated" (random generator) or "http" (watch bridge).
	// Env: PROVIDER_KIND
	Kind string `env:"KIND"`

	// FailureRate is the probability in [0,1] that a simulated fetch fails.
	// Env: PROVIDER_FAILURE_RATE
	FailureRate *float64 `env:"FAILURE_RATE"`

	// ConnectFailureRate is the probability in [0,1] that a simulated
	// reachability check reports the watch as disconnected.
	// Env: PROVIDER_CONNECT_FAILURE_RATE
	ConnectFailureRate *float64 `env:"CONNECT_FAILURE_RATE"`

	// MinFetchDelay and MaxFetchDelay bound the simulated read latency.
	// Nil means unset; an explicit zero disables the delay.
	// Env: PROVIDER_MIN_FETCH_DELAY, PROVIDER_MAX_FETCH_DELAY
	MinFetchDelay *time.Duration `env:"MIN_FETCH_DELAY"`
	MaxFetchDelay *time.Duration `env:"MAX_FETCH_DELAY"`

	// ConnectDelay is the simulated reachability check latency.
	// Env: PROVIDER_CONNECT_DELAY
	ConnectDelay *time.Duration `env:"CONNECT_DELAY"`

	// PermissionDelay is the simulated permission prompt latency.
	// Env: PROVIDER_PERMISSION_DELAY
	PermissionDelay *time.Duration `env:"PERMISSION_DELAY"`

	// DenyPermission makes the simulated provider refuse health permissions.
	// Env: PROVIDER_DENY_PERMISSION
	DenyPermission bool `env:"DENY_PERMISSION"`

	// HTTPAddress is the base URL of the watch bridge for Kind "http".
	// Env: PROVIDER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every bridge request.
	// Env: PROVIDER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for the record store.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the record store.
type DB struct {
	// DSN selects the backend: "memory" for the in-process store, a
	// "postgres://" URI for PostgreSQL, anything else is treated as a SQLite
	// file path or "file:" DSN.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network settings for the control API.
type Server struct {
	// HTTPAddress is the TCP address the control API listens on, in
	// "host:port" format. Set to "-" to disable the API.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
}

// Workers holds the sync scheduling configuration.
type Workers struct {
	// SyncInterval is the period of the recurring sync trigger.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// HistoryLimit bounds the cached history.
	// Env: WORKERS_HISTORY_LIMIT
	HistoryLimit int `env:"HISTORY_LIMIT"`
}

// APIEnabled reports whether the control API should be started.
func (s Server) APIEnabled() bool {
	return s.HTTPAddress != "-"
}

// GetStructuredConfig loads, merges, defaults and validates the service
// configuration from all available sources in the following priority order
// (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return LoadStructuredConfig(os.Args[1:])
}

// LoadStructuredConfig is [GetStructuredConfig] with explicit command-line
// arguments. Subcommands pass the arguments left after their own flags.
func LoadStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder(args).
		withEnv().
		withFlags().
		withJSON().
		build()
}

// redactedMask replaces secrets in [StructuredConfig.Redacted], matching
// what [url.URL.Redacted] writes for passwords.
const redactedMask = "xxxxx"

// Redacted returns a copy of cfg that is safe to log: the token sign key is
// masked and any password in a URI-style DSN is replaced.
func (cfg StructuredConfig) Redacted() StructuredConfig {
	if cfg.App.TokenSignKey != "" {
		cfg.App.TokenSignKey = redactedMask
	}
	cfg.Storage.DB.DSN = redactDSN(cfg.Storage.DB.DSN)
	return cfg
}

func redactDSN(dsn string) string {
	if !strings.Contains(dsn, "://") {
		return dsn
	}

	u, err := url.Parse(dsn)
	if err != nil {
		// unparsable URIs may still carry credentials
		return redactedMask
	}
	return u.Redacted()
}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Provider.Kind == "" {
		cfg.Provider.Kind = DefaultProviderKind
	}
	if cfg.Provider.FailureRate == nil {
		cfg.Provider.FailureRate = ptr(DefaultFailureRate)
	}
	if cfg.Provider.ConnectFailureRate == nil {
		cfg.Provider.ConnectFailureRate = ptr(DefaultConnectFailureRate)
	}
	if cfg.Provider.MinFetchDelay == nil {
		cfg.Provider.MinFetchDelay = ptr(DefaultMinFetchDelay)
	}
	if cfg.Provider.MaxFetchDelay == nil {
		cfg.Provider.MaxFetchDelay = ptr(max(DefaultMaxFetchDelay, *cfg.Provider.MinFetchDelay))
	}
	if cfg.Provider.ConnectDelay == nil {
		cfg.Provider.ConnectDelay = ptr(DefaultConnectDelay)
	}
	if cfg.Provider.PermissionDelay == nil {
		cfg.Provider.PermissionDelay = ptr(DefaultPermissionDelay)
	}
	if cfg.Provider.RequestTimeout == 0 {
		cfg.Provider.RequestTimeout = DefaultProviderTimeout
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = DefaultDSN
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Workers.SyncInterval == 0 {
		cfg.Workers.SyncInterval = DefaultSyncInterval
	}
	if cfg.Workers.HistoryLimit == 0 {
		cfg.Workers.HistoryLimit = DefaultHistoryLimit
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
}

func ptr[T any](v T) *T {
	return &v
}

// DurationOrZero dereferences d, treating nil as zero.
func DurationOrZero(d *time.Duration) time.Duration {
	if d == nil {
		return 0
	}
	return *d
}
