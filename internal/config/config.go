// Package config loads service configuration from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the process needs to start. All values come from
// BAKESHOP_-prefixed environment variables with sensible local defaults.
type Config struct {
	ServiceName string `envconfig:"SERVICE_NAME" default:"bakeshop"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"./data/orders.db"`

	// RedisAddr enables the read cache when non-empty.
	RedisAddr string `envconfig:"REDIS_ADDR" default:""`

	// TracingEnabled controls OTLP export; logs carry trace ids either way.
	TracingEnabled bool `envconfig:"TRACING_ENABLED" default:"false"`
}

// Load reads the BAKESHOP_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("bakeshop", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
