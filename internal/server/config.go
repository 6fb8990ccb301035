// Package server implements cffd, the HTTP front end to the citation
// toolkit: validation and conversion endpoints plus a read API over
// the citation catalog.
package server

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/cffkit/cffkit/internal/config"
)

// Config holds cffd's runtime settings, read from CFFD_* environment
// variables.
type Config struct {
	Port        string        `env:"CFFD_PORT" envDefault:"8080"`
	IndexDir    string        `env:"CFFD_INDEX_DIR"`
	BodyLimit   int           `env:"CFFD_BODY_LIMIT" envDefault:"1048576"`
	ReadTimeout time.Duration `env:"CFFD_READ_TIMEOUT" envDefault:"30s"`
}

// LoadConfig reads the configuration from the environment. The index
// directory falls back to the CLI's configured one, so cffd serves
// whatever cff index build produced.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.IndexDir == "" {
		cfg.IndexDir = config.IndexDir()
	}
	return cfg, nil
}
