// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/spf13/pflag"
)

// StructuredConfig is the top-level configuration container for the
// go-writeups client. It is populated by merging values from command-line
// flags, environment variables, an optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the session sealing key
	// and the log file location.
	App App `envPrefix:"APP_"`

	// Storage holds configuration of the local session database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the remote data/credential service connection settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Cache holds request-cache settings for catalog queries.
	Cache Cache `envPrefix:"CACHE_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// SessionKey is the secret the local session tokens are sealed with.
	// Must be kept confidential.
	// Env: APP_SESSION_KEY
	SessionKey string `env:"SESSION_KEY"`

	// LogPath is the file the client writes its JSON log to. Empty means a
	// "logs" file next to the executable.
	// Env: APP_LOG_PATH
	LogPath string `env:"LOG_PATH"`
}

// Storage groups the configuration for the local storage backend.
type Storage struct {
	// DB holds the local SQLite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite file path (e.g. "writeups.db").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Adapter holds the settings of the remote backend the client talks to.
type Adapter struct {
	// HTTPAddress is the base URL of the backend
	// (e.g. "https://project.example.co").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// APIKey is the public (anon) key sent in the apikey header of every
	// request.
	// Env: ADAPTER_API_KEY
	APIKey string `env:"API_KEY"`

	// RequestTimeout is the maximum duration of a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Cache holds request-cache settings.
type Cache struct {
	// TTL is how long a cached catalog response stays fresh.
	// Env: CACHE_TTL
	TTL time.Duration `env:"TTL"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// RefreshInterval is how often the session refresher checks the token.
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`

	// RefreshLeeway is how long before expiry the access token is renewed.
	// Env: WORKERS_REFRESH_LEEWAY
	RefreshLeeway time.Duration `env:"REFRESH_LEEWAY"`
}

// Default values applied after every other source.
const (
	DefaultRequestTimeout  = 15 * time.Second
	DefaultCacheTTL        = 5 * time.Minute
	DefaultRefreshInterval = time.Minute
	DefaultRefreshLeeway   = 2 * time.Minute
	DefaultDSN             = "writeups.db"
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{DB: DB{DSN: DefaultDSN}},
		Adapter: Adapter{RequestTimeout: DefaultRequestTimeout},
		Cache:   Cache{TTL: DefaultCacheTTL},
		Workers: Workers{
			RefreshInterval: DefaultRefreshInterval,
			RefreshLeeway:   DefaultRefreshLeeway,
		},
	}
}

// GetStructuredConfig loads and merges the configuration from all available
// sources. Earlier sources win for every non-zero field:
//  1. Command-line flags registered with [RegisterFlags] on fs
//  2. Environment variables
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// fs may be nil, in which case flags are skipped.
func GetStructuredConfig(fs *pflag.FlagSet) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(fs).
		withEnv().
		withJSON().
		withDefaults().
		build()
}
