package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the run options read from the environment
type Config struct {
	Output    string  `env:"SKYFEM_OUTPUT"`
	Workers   int     `env:"SKYFEM_WORKERS" envDefault:"1"`
	Plot      string  `env:"SKYFEM_PLOT"`
	PlotScale float64 `env:"SKYFEM_PLOT_SCALE" envDefault:"1"`
	Debug     bool    `env:"SKYFEM_DEBUG"`
}

// ParseConfig loads the configuration from the environment and fills in the
// output file name from the input file when none is given
func ParseConfig(input string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Workers < 1 {
		return cfg, fmt.Errorf("SKYFEM_WORKERS must be at least 1, got %d", cfg.Workers)
	}
	if cfg.Output == "" {
		cfg.Output = strings.TrimSuffix(input, filepath.Ext(input)) + ".out"
	}
	return cfg, nil
}
