// Package config loads application configuration from environment variables into
// tagged Go structs.
//
// It wraps github.com/caarlos0/env/v11 for parsing and github.com/joho/godotenv for
// .env files:
//
//   - Load parses the environment into any struct using `env`, `envDefault` and
//     `envPrefix` tags. The default .env file in the working directory is read once
//     per process; a missing file is fine.
//   - Each configuration type is parsed once and cached, so packages can call Load
//     for the same type without paying the parsing cost again.
//   - MustLoad panics on failure, for configuration the process cannot run without.
//   - LoadEnvFiles reads explicit .env files; Reset clears the cache (handy in tests).
//
// # Usage
//
//	type AppConfig struct {
//		Session session.Config
//		Redis   redis.Config
//	}
//
//	var cfg AppConfig
//	config.MustLoad(&cfg)
//
// # Errors
//
// ErrParsingConfig is joined with the parser error when a value is malformed or a
// required variable is missing. ErrNilPointer is returned for a nil destination.
package config
