// Package config loads configuration structs from environment variables.
// A .env file, if present, is loaded once at first use so local development
// and production share the same code path.
package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrNilPointer is returned when Load receives a nil destination.
	ErrNilPointer = errors.New("config: nil pointer provided")
	// ErrParsing is returned when environment variables cannot be parsed
	// into the destination struct.
	ErrParsing = errors.New("config: failed to parse environment variables")
)

var dotenvOnce sync.Once

// Load parses environment variables into cfg based on `env` struct tags.
func Load[T any](cfg *T) error {
	dotenvOnce.Do(func() {
		// Missing .env is fine; env vars may come from the environment itself.
		_ = godotenv.Load()
	})

	if cfg == nil {
		return ErrNilPointer
	}

	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParsing, err)
	}
	return nil
}

// MustLoad is Load for configuration the process cannot start without.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
