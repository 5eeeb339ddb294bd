package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config holds everything the server needs to run. Values come from
// STOREOPS_-prefixed environment variables; CLI flags override them.
type Config struct {
	Addr        string  `envconfig:"ADDR" default:":8080"`
	LogLevel    string  `envconfig:"LOG_LEVEL" default:"info"`
	OrderCount  int     `envconfig:"ORDER_COUNT" default:"180"`
	ItemCount   int     `envconfig:"ITEM_COUNT" default:"48"`
	StoreName   string  `envconfig:"STORE_NAME" default:"StoreOps"`
	SeedDate    string  `envconfig:"SEED_DATE" default:"2026-02-02"`
	FailureRate float64 `envconfig:"FAILURE_RATE" default:"0"`
}

const envPrefix = "STOREOPS"

// Load reads the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "process environment config")
	}
	return cfg, nil
}
