// Package config loads runtime configuration from the environment.
package config

import (
	"os"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// Config stores runtime configuration for the service.
type Config struct {
	ListenAddr string `validate:"required,hostname_port"`
	DataDir    string `validate:"required"`
}

// Load reads configuration from the environment, applying defaults.
// POST: Returns a validated Config or an error naming the bad field
func Load() (Config, error) {
	cfg := Config{
		ListenAddr: envOrDefault("COURTSIDE_ADDR", "0.0.0.0:8000"),
		DataDir:    envOrDefault("COURTSIDE_DATA_DIR", "data"),
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, crerr.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
