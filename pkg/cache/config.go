package cache

import (
	"fmt"
	"time"
)

// Engine names a cache backend implementation.
type Engine string

const (
	EngineMemory   Engine = "memory"
	EngineRedis    Engine = "redis"
	EnginePostgres Engine = "postgres"
	EngineMongo    Engine = "mongo"
)

// Config describes one cache instance.
type Config struct {
	Engine          Engine        `env:"CACHE_ENGINE" envDefault:"memory"`
	Duration        time.Duration `env:"CACHE_DURATION" envDefault:"30m"`
	Prefix          string        `env:"CACHE_PREFIX" envDefault:"sesskit:"`
	MemoryCapacity  int           `env:"CACHE_MEMORY_CAPACITY" envDefault:"10000"`
	CleanupInterval time.Duration `env:"CACHE_CLEANUP_INTERVAL" envDefault:"1m"`
}

// DefaultConfig returns the default cache instance configuration.
func DefaultConfig() Config {
	return Config{
		Engine:          EngineMemory,
		Duration:        30 * time.Minute,
		Prefix:          "sesskit:",
		MemoryCapacity:  10000,
		CleanupInterval: time.Minute,
	}
}

// Validate checks that the engine is known and, for the memory engine, that it can hold entries.
func (c Config) Validate() error {
	switch c.Engine {
	case EngineMemory:
		if c.MemoryCapacity <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidCapacity, c.MemoryCapacity)
		}
		return nil
	case EngineRedis, EnginePostgres, EngineMongo:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEngine, c.Engine)
	}
}

// InstanceOptions converts the config into registration options.
func (c Config) InstanceOptions() []InstanceOption {
	return []InstanceOption{WithDuration(c.Duration), WithPrefix(c.Prefix)}
}
