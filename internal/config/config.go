// Package config reads the service settings from BLOGFUL_* environment
// variables. A .env file in the working directory is loaded first by main.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const prefix = "BLOGFUL_"

type Config struct {
	Addr        string `koanf:"addr" validate:"required"`
	DiagAddr    string `koanf:"diag_addr" validate:"required"`
	DatabaseURL string `koanf:"database_url" validate:"required"`
	LogLevel    string `koanf:"log_level" validate:"oneof=debug info warn error"`
}

func Default() Config {
	return Config{
		Addr:     ":3333",
		DiagAddr: ":9999",
		LogLevel: "info",
	}
}

// Load overlays the environment on Default and validates the result.
// BLOGFUL_DATABASE_URL maps to database_url and so on.
func Load() (Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(prefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, prefix))
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}
