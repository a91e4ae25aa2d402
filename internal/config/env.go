package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// parseEnv reads a StructuredConfig from environ, a KEY=value map. A nil map
// means the process environment. Variable names come from the `env` and
// `envPrefix` tags, e.g. ADAPTER_ADDRESS or WORKERS_REFRESH_INTERVAL.
func parseEnv(environ map[string]string) (*StructuredConfig, error) {
	if environ == nil {
		environ = env.ToMap(os.Environ())
	}

	var cfg StructuredConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	return &cfg, nil
}
