// Package config loads pool settings from YAML or JSON files, for
// deployments that size the pool from configuration instead of code.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/corral-go/corral/pool"
)

// Config mirrors the pool options that make sense in a file. The zero
// value of every field means "use the pool default".
type Config struct {
	// Workers is the pool size. 0 keeps the default (GOMAXPROCS);
	// a negative value is rejected by Validate.
	Workers int `yaml:"workers" json:"workers"`

	// PinWorkers pins worker threads to CPU cores where supported.
	PinWorkers bool `yaml:"pin_workers" json:"pin_workers"`

	// RateLimit caps how fast workers start tasks. Nil means unlimited.
	RateLimit *RateLimit `yaml:"rate_limit" json:"rate_limit"`
}

// RateLimit configures the pool-wide execution rate.
type RateLimit struct {
	PerSecond float64 `yaml:"per_second" json:"per_second"`
	Burst     int     `yaml:"burst" json:"burst"`
}

// Load reads a configuration file, picking the decoder by extension
// (.yaml/.yml or .json; anything else is treated as YAML), and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if strings.HasSuffix(path, ".json") {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values the pool would reject.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	if c.RateLimit != nil {
		if c.RateLimit.PerSecond <= 0 {
			return fmt.Errorf("config: rate_limit.per_second must be positive, got %g", c.RateLimit.PerSecond)
		}
		if c.RateLimit.Burst < 1 {
			return fmt.Errorf("config: rate_limit.burst must be at least 1, got %d", c.RateLimit.Burst)
		}
	}
	return nil
}

// Options converts the configuration into pool options.
//
// Example:
//
//	cfg, err := config.Load("pool.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p, err := pool.New(work, cfg.Options()...)
func (c *Config) Options() []pool.Option {
	var opts []pool.Option
	if c.Workers > 0 {
		opts = append(opts, pool.WithWorkers(c.Workers))
	}
	if c.PinWorkers {
		opts = append(opts, pool.WithPinWorkers(true))
	}
	if c.RateLimit != nil {
		opts = append(opts, pool.WithRateLimit(c.RateLimit.PerSecond, c.RateLimit.Burst))
	}
	return opts
}
