package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPath string   // hcl file or directory
	Variant      string   // registered variant to launch
	LibraryPaths []string // directories searched for shared objects
	Args         []string // passed to the native entry after argv[0]

	List   bool
	DryRun bool

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.Variant == "" && !cfg.List {
		return nil, errors.New("a variant is required unless listing variants")
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}
	return &cfg, nil
}
