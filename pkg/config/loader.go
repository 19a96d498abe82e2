package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// entry holds the parsed value of one configuration type.
type entry struct {
	once  sync.Once
	value any
	err   error
}

var (
	// loaded maps reflect.Type to *entry.
	loaded sync.Map

	defaultEnvLoaded sync.Once
)

// LoadEnv loads variables from .env files into the process environment.
// Variables already set in the environment win over file values.
// Without arguments it reads ./.env and ignores a missing file; explicitly
// named files must exist.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Join(ErrLoadingEnvFile, err)
		}
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(files ...string) {
	if err := LoadEnv(files...); err != nil {
		panic(fmt.Sprintf("Failed to load env files: %v", err))
	}
}

// Load parses environment variables into v using its `env` struct tags.
// The default .env file is read on first use. Each configuration type is
// parsed once per process; later calls copy the cached value. A failed parse
// is not cached, so the call can be retried after fixing the environment.
//
// Example:
//
//	type DatabaseConfig struct {
//		Host     string `env:"DB_HOST" envDefault:"localhost"`
//		Port     int    `env:"DB_PORT" envDefault:"5432"`
//		Username string `env:"DB_USER,required"`
//	}
//
//	var dbConfig DatabaseConfig
//	if err := config.Load(&dbConfig); err != nil {
//		// Handle error
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		_ = LoadEnv()
	})
	if v == nil {
		return ErrNilPointer
	}

	key := reflect.TypeFor[T]()
	actual, _ := loaded.LoadOrStore(key, &entry{})
	e := actual.(*entry)

	e.once.Do(func() {
		var cfg T
		if err := env.Parse(&cfg); err != nil {
			e.err = errors.Join(ErrParsingConfig, err)
			return
		}
		e.value = cfg
	})

	if e.err != nil {
		loaded.CompareAndDelete(key, e)
		return e.err
	}

	*v = e.value.(T)
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// This is useful for configurations that are required for the application to start.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

// ResetCache forgets every parsed configuration. Intended for tests.
func ResetCache() {
	loaded.Clear()
}
