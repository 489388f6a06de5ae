package domain

import "time"

// RunReport bundles the inputs and results of one invocation for formatting and recording.
type RunReport struct {
	Name        string               `yaml:"name" json:"name"`
	GeneratedAt time.Time            `yaml:"generated_at" json:"generated_at"`
	Parameters  SimulationParameters `yaml:"parameters" json:"parameters"`
	Results     []AggregateResult    `yaml:"results" json:"results"`
}
