package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// cache holds one parsed value per configuration type. Failed loads are
// not stored, so a later call sees a fixed environment.
var cache = struct {
	mu     sync.Mutex
	values map[reflect.Type]any
}{values: make(map[reflect.Type]any)}

var dotenvOnce sync.Once

// Load fills v from environment variables according to its env tags and
// checks the result against its validate tags. The default .env file is
// read on the first call if it exists.
//
// Each configuration type is parsed once; later calls copy the cached
// value into v.
//
//	var cfg engine.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()

	cache.mu.Lock()
	defer cache.mu.Unlock()

	if cached, ok := cache.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	if err := validate(&parsed); err != nil {
		return err
	}
	cache.values[key] = parsed
	*v = parsed
	return nil
}

// MustLoad is like Load but panics on failure. Use it for settings the
// process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

func forget[T any]() {
	cache.mu.Lock()
	delete(cache.values, reflect.TypeFor[T]())
	cache.mu.Unlock()
}
