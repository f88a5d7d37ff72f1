package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Settings are the process-level runtime settings, read from the environment.
// Domain configuration (weights, skills, roles) lives in the JSON files and
// is loaded separately via Load.
type Settings struct {
	Port         int    `env:"PORT" envDefault:"8000"`
	ModelsDir    string `env:"MODELS_DIR" envDefault:"models"`
	DataDir      string `env:"DATA_DIR" envDefault:"data"`
	ConfigDir    string `env:"CONFIG_DIR" envDefault:"config"`
	ModelVersion string `env:"MODEL_VERSION" envDefault:""`
}

// LoadSettings parses runtime settings from the environment.
func LoadSettings() (*Settings, error) {
	s := &Settings{}
	if err := env.Parse(s); err != nil {
		return nil, fmt.Errorf("parse environment settings: %w", err)
	}
	if s.Port <= 0 || s.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT %d", s.Port)
	}
	return s, nil
}

// Addr returns the listen address for the HTTP server.
func (s *Settings) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}
