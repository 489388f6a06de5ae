package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/rpgo/portfolio-survival/internal/domain"
)

// EnvOverrides holds the settings that may be supplied through the environment.
// Unset variables leave the corresponding pointer nil.
type EnvOverrides struct {
	Simulations *int   `env:"SURVIVAL_SIMULATIONS"`
	Seed        *int64 `env:"SURVIVAL_SEED"`
	Workers     *int   `env:"SURVIVAL_WORKERS"`
	Years       *int   `env:"SURVIVAL_YEARS"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnvOverrides reads the SURVIVAL_* variables.
func LoadEnvOverrides() (EnvOverrides, error) {
	var o EnvOverrides
	err := ParseEnv(&o)
	return o, err
}

// Apply copies every set override onto params.
func (o EnvOverrides) Apply(params *domain.SimulationParameters) {
	if o.Simulations != nil {
		params.SimulationCount = *o.Simulations
	}
	if o.Seed != nil {
		params.Seed = *o.Seed
	}
	if o.Workers != nil {
		params.Workers = *o.Workers
	}
	if o.Years != nil {
		params.Years = *o.Years
	}
}

// ApplyEnvOverrides reads the environment and applies it to params.
func ApplyEnvOverrides(params *domain.SimulationParameters) error {
	o, err := LoadEnvOverrides()
	if err != nil {
		return err
	}
	o.Apply(params)
	return nil
}
