package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
)

// LoadEnv loads one or more .env files into the process environment.
// Later files override earlier ones; variables already set in the process
// environment before the first call are overridden as well.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	if err := godotenv.Overload(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// ResetCache drops every cached configuration. Intended for tests.
func ResetCache() {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	clear(cache.values)
}

// ForceReloadConfig discards the cached value for T and parses it again.
func ForceReloadConfig[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	forget[T]()
	return Load(v)
}
