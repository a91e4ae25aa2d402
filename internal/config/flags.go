package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// Flag names shared by every command of the client.
const (
	flagConfig          = "config"
	flagAddress         = "address"
	flagAPIKey          = "api-key"
	flagRequestTimeout  = "request-timeout"
	flagDSN             = "db"
	flagSessionKey      = "session-key"
	flagLogPath         = "log"
	flagCacheTTL        = "cache-ttl"
	flagRefreshInterval = "refresh-interval"
)

// RegisterFlags defines the configuration flags on fs. Commands register them
// as persistent flags so every subcommand accepts them.
//
// Flags:
//
//	-c/--config        json file path with configs
//	-a/--address       backend base URL
//	--api-key          backend public api key
//	--request-timeout  request timeout (e.g., "15s")
//	-d/--db            local SQLite database file
//	--session-key      secret used to seal the stored session
//	--log              log file path
//	--cache-ttl        request cache freshness (e.g., "5m")
//	--refresh-interval session refresh tick (e.g., "1m")
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(flagConfig, "c", "", "JSON config file path")
	fs.StringP(flagAddress, "a", "", "Backend base URL")
	fs.String(flagAPIKey, "", "Backend public API key")
	fs.Duration(flagRequestTimeout, 0, "Request timeout (e.g., 15s)")
	fs.StringP(flagDSN, "d", "", "Local SQLite database file")
	fs.String(flagSessionKey, "", "Secret used to seal the stored session")
	fs.String(flagLogPath, "", "Log file path")
	fs.Duration(flagCacheTTL, 0, "Request cache freshness (e.g., 5m)")
	fs.Duration(flagRefreshInterval, 0, "Session refresh interval (e.g., 1m)")
}

// ParseFlags reads the values of the flags registered by [RegisterFlags].
// Unset flags keep their zero value so lower-priority sources can fill them.
func ParseFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	var (
		cfg StructuredConfig
		err error
	)

	str := func(name string) string {
		if err != nil {
			return ""
		}
		var v string
		v, err = fs.GetString(name)
		return v
	}
	dur := func(name string) time.Duration {
		if err != nil {
			return 0
		}
		var v time.Duration
		v, err = fs.GetDuration(name)
		return v
	}

	cfg.JSONFilePath = str(flagConfig)
	cfg.Adapter.HTTPAddress = str(flagAddress)
	cfg.Adapter.APIKey = str(flagAPIKey)
	cfg.Adapter.RequestTimeout = dur(flagRequestTimeout)
	cfg.Storage.DB.DSN = str(flagDSN)
	cfg.App.SessionKey = str(flagSessionKey)
	cfg.App.LogPath = str(flagLogPath)
	cfg.Cache.TTL = dur(flagCacheTTL)
	cfg.Workers.RefreshInterval = dur(flagRefreshInterval)

	if err != nil {
		return nil, fmt.Errorf("error reading flags: %w", err)
	}

	return &cfg, nil
}
