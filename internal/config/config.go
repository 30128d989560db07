// Package config loads the process configuration from environment
// variables. The dashboard takes no flags beyond its CLI; everything
// operational - store credentials, listen address, default map center -
// arrives through the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/dyluth/kennel/internal/geo"
	"github.com/redis/go-redis/v9"
)

// Fixed database and collection names. These are part of the deployment
// contract, not configuration.
const (
	Database   = "aac"
	Collection = "animals"
)

// Config holds all environment-supplied settings.
type Config struct {
	StoreUser     string `env:"KENNEL_STORE_USER"`
	StorePassword string `env:"KENNEL_STORE_PASS"`
	StoreHost     string `env:"KENNEL_STORE_HOST" envDefault:"localhost"`
	StorePort     int    `env:"KENNEL_STORE_PORT" envDefault:"6379"`

	ListenAddr string `env:"KENNEL_LISTEN_ADDR" envDefault:":8080"`

	// Default map center when nothing is selected.
	DefaultLat  float64 `env:"KENNEL_DEFAULT_LAT" envDefault:"30.75"`
	DefaultLong float64 `env:"KENNEL_DEFAULT_LONG" envDefault:"-97.48"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// StoreOptions assembles the store connection options from the configured
// credentials.
func (c *Config) StoreOptions() *redis.Options {
	return &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", c.StoreHost, c.StorePort),
		Username: c.StoreUser,
		Password: c.StorePassword,
	}
}

// DefaultCenter returns the configured default map center.
func (c *Config) DefaultCenter() geo.Point {
	return geo.Point{Lat: c.DefaultLat, Long: c.DefaultLong}
}
