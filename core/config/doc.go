// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads a .env file on first use and uses the caarlos0/env
// library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	type DatabaseConfig struct {
//		Driver string `env:"DB_DRIVER" envDefault:"sqlite"`
//		Path   string `env:"SQLITE_PATH" envDefault:"./data/db.sqlite"`
//	}
//
//	var db DatabaseConfig
//	if err := config.Load(&db); err != nil {
//		log.Fatal(err)
//	}
//
//	// Or panic on failure (startup code)
//	config.MustLoad(&db)
//
// # Caching Behavior
//
// Each configuration type is loaded only once per process. Different types
// are cached independently. Parse skips the cache.
//
// # YAML files
//
// LoadYAML decodes structured files such as the site layout. Unknown keys
// are rejected so typos surface at startup.
package config
