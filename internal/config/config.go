package config

import (
	"github.com/caarlos0/env/v11"

	"trendads/internal/config/configs"
)

// Config aggregates all configuration sections for the service. Fields are
// populated from environment variables using the caarlos0/env library; the
// nested structs are tagged with envPrefix so their fields are parsed with
// the given prefix. Use Load to construct a Config.
type Config struct {
	// Env specifies the deployment environment (e.g. prod, dev).
	Env string `env:"ENV" envDefault:"prod"`

	// Storage selects the backing store for the article catalog and the
	// campaign registry: "memory" (default) or "postgres".
	Storage string `env:"STORAGE" envDefault:"memory"`

	// HTTP holds configuration for the HTTP server (HTTP_ prefix).
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger (LOG_ prefix).
	Log configs.Logger `envPrefix:"LOG_"`

	// Psql configures the PostgreSQL connection (PSQL_ prefix). Only used
	// when Storage is "postgres".
	Psql configs.Postgres `envPrefix:"PSQL_"`

	// Ads configures campaign provisioning defaults and the external
	// collaborators (ADS_ prefix).
	Ads configs.Ads `envPrefix:"ADS_"`
}

// Load reads configuration from environment variables into a Config. All
// fields fall back to their declared defaults when no variable is set.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
