// Package config loads typed configuration from environment variables.
//
// It combines github.com/joho/godotenv, which reads .env files into the
// process environment, with github.com/caarlos0/env/v11, which parses the
// environment into structs annotated with `env` tags.
//
// Each configuration type is parsed once per process and cached by its type;
// later Load calls copy the cached value. Failed parses are not cached.
//
// # Usage
//
//	var cfg session.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Load reads ./.env on first use when it exists. Additional files can be
// loaded explicitly before parsing:
//
//	config.MustLoadEnv(".env", ".env.local")
//
// Values already present in the process environment are never overridden.
//
// # Error Handling
//
//   - ErrParsingConfig  – env vars could not be parsed into the struct.
//   - ErrLoadingEnvFile – a named .env file is missing or malformed.
//   - ErrNilPointer     – nil pointer passed to Load or MustLoad.
//
// Use ResetCache in tests that change the environment between loads.
package config
