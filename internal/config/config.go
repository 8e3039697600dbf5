package config

import (
	"fmt"
	"os"

	env "github.com/caarlos0/env/v7"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings sourced from the environment.
type Config struct {
	HTTPAddr    string `env:"HARBOR_HTTP_ADDR" envDefault:":8080"`
	PostgresDSN string `env:"HARBOR_PG_DSN"`
	AuthSecret  string `env:"HARBOR_AUTH_SECRET"`
	LogLevel    string `env:"HARBOR_LOG_LEVEL" envDefault:"info"`

	// YardSlots is the configured container-yard capacity used for the
	// occupancy percentage on the dashboard.
	YardSlots int `env:"HARBOR_YARD_SLOTS" envDefault:"1000"`

	RateBurst  int `env:"HARBOR_RATE_BURST" envDefault:"20"`
	RatePerSec int `env:"HARBOR_RATE_PER_SEC" envDefault:"10"`
}

// Load reads .env (when present) and parses environment variables.
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.YardSlots <= 0 {
		return Config{}, fmt.Errorf("HARBOR_YARD_SLOTS must be > 0, got %d", cfg.YardSlots)
	}
	return cfg, nil
}
