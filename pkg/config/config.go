package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var ErrParsingConfig = errors.New("config: failed to parse")

// Load populates a config struct from environment variables using
// caarlos0/env struct tags. A .env file in the working directory is
// loaded first when present; a missing file is not an error.
func Load[T any]() (T, error) {
	var cfg T

	// Environment variables already set take precedence over the file.
	_ = godotenv.Load()

	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Join(ErrParsingConfig, fmt.Errorf("%T: %w", cfg, err))
	}
	return cfg, nil
}

// MustLoad is Load for program startup: misconfiguration stops the
// process instead of limping along.
func MustLoad[T any]() T {
	cfg, err := Load[T]()
	if err != nil {
		panic(err)
	}
	return cfg
}
