// Package config loads typed configuration from the environment.
//
// Each configuration type is parsed once with github.com/caarlos0/env and
// cached; later loads of the same type return the cached value. A .env file
// is read on first use through github.com/joho/godotenv.
//
//	var cfg server.Config
//	config.MustLoad(&cfg)
package config
