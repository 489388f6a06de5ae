package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rpgo/portfolio-survival/internal/calculation"
	"github.com/rpgo/portfolio-survival/internal/domain"
	"github.com/rpgo/portfolio-survival/pkg/dateutil"
)

const (
	DefaultSimulationCount  = 10000
	DefaultDegreesOfFreedom = 5.0
	DefaultStartingAge      = 65
)

// Scenario is a loaded scenario file: a name, the engine parameters and the
// return models to compare.
type Scenario struct {
	Name       string
	Parameters domain.SimulationParameters
	Models     []domain.ReturnModelKind
}

// scenarioFile mirrors the YAML layout. Return parameters accept strings so that
// hand-edited files with quoted numbers still load.
type scenarioFile struct {
	Name             string            `yaml:"name"`
	InitialBalance   float64           `yaml:"initial_balance"`
	Years            int               `yaml:"years"`
	Simulations      int               `yaml:"simulations"`
	ReturnModel      string            `yaml:"return_model"`
	Models           []string          `yaml:"models"`
	MeanReturn       flexFloat         `yaml:"mean_return"`
	StdDev           flexFloat         `yaml:"std_dev"`
	DegreesOfFreedom flexFloat         `yaml:"degrees_of_freedom"`
	FeePercent       float64           `yaml:"fee_percent"`
	Withdrawal       string            `yaml:"withdrawal"`
	RatePercent      *float64          `yaml:"rate_percent"`
	RateBands        []domain.RateBand `yaml:"rate_bands"`
	StartingAge      int               `yaml:"starting_age"`
	BirthDate        string            `yaml:"birth_date"`
	RetirementDate   string            `yaml:"retirement_date"`
	AnnualWithdrawal float64           `yaml:"annual_withdrawal"`
	InflationPercent float64           `yaml:"inflation_percent"`
	Seed             int64             `yaml:"seed"`
	Workers          int               `yaml:"workers"`
}

// flexFloat decodes a YAML scalar as a float. Values that do not parse become 0
// and are remembered as non-numeric.
type flexFloat struct {
	Value   float64
	Set     bool
	Numeric bool
}

func (f *flexFloat) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number, got a %s", node.Line, kindName(node.Kind))
	}
	f.Set = true
	if node.Tag == "!!null" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(node.Value), 64)
	if err != nil {
		f.Value = 0
		return nil
	}
	f.Value = v
	f.Numeric = true
	return nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.AliasNode:
		return "alias"
	default:
		return "node"
	}
}

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a YAML scenario file.
func (ip *InputParser) LoadFromFile(filename string) (*Scenario, error) {
	sc, err := ip.LoadFile(filename)
	if err != nil {
		return nil, err
	}

	if err := ip.ValidateConfiguration(&sc.Parameters); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return sc, nil
}

// LoadFile reads and parses a scenario file without validating it, so callers can
// layer overrides on top before calling ValidateConfiguration.
func (ip *InputParser) LoadFile(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes a scenario document and fills in defaults. It does not validate.
func (ip *InputParser) Parse(data []byte) (*Scenario, error) {
	var raw scenarioFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	params := domain.SimulationParameters{
		InitialBalance:    raw.InitialBalance,
		Years:             raw.Years,
		SimulationCount:   raw.Simulations,
		MeanReturnPercent: raw.MeanReturn.Value,
		StdDevPercent:     raw.StdDev.Value,
		DegreesOfFreedom:  raw.DegreesOfFreedom.Value,
		FeePercent:        raw.FeePercent,
		RateBands:         raw.RateBands,
		StartingAge:       raw.StartingAge,
		AnnualWithdrawal:  raw.AnnualWithdrawal,
		InflationPercent:  raw.InflationPercent,
		Seed:              raw.Seed,
		Workers:           raw.Workers,
	}

	if params.SimulationCount == 0 {
		params.SimulationCount = DefaultSimulationCount
	}
	if !raw.DegreesOfFreedom.Numeric {
		params.DegreesOfFreedom = DefaultDegreesOfFreedom
	}
	if params.StartingAge == 0 && raw.BirthDate != "" {
		age, err := startingAgeFromDates(raw.BirthDate, raw.RetirementDate)
		if err != nil {
			return nil, err
		}
		params.StartingAge = age
	}
	if params.StartingAge == 0 {
		params.StartingAge = DefaultStartingAge
	}

	if raw.ReturnModel != "" {
		kind, err := domain.ParseReturnModelKind(raw.ReturnModel)
		if err != nil {
			return nil, err
		}
		params.ReturnModel = kind
	}
	if raw.Withdrawal != "" {
		kind, err := domain.ParseWithdrawalKind(raw.Withdrawal)
		if err != nil {
			return nil, err
		}
		params.Withdrawal = kind
	}

	// A flat rate is shorthand for a single band covering every age.
	if raw.RatePercent != nil && len(params.RateBands) == 0 {
		params.RateBands = []domain.RateBand{{MinAge: 0, MaxAge: 150, RatePercent: *raw.RatePercent}}
	}

	sc := &Scenario{Name: raw.Name, Parameters: params}
	for _, m := range raw.Models {
		kind, err := domain.ParseReturnModelKind(m)
		if err != nil {
			return nil, fmt.Errorf("models: %w", err)
		}
		sc.Models = append(sc.Models, kind)
	}
	return sc, nil
}

// startingAgeFromDates derives the first simulated age from a birth date and an
// optional retirement date (today when empty).
func startingAgeFromDates(birth, retirement string) (int, error) {
	b, err := dateutil.ParseDate(birth)
	if err != nil {
		return 0, fmt.Errorf("birth_date: %w", err)
	}
	var r time.Time
	if retirement != "" {
		if r, err = dateutil.ParseDate(retirement); err != nil {
			return 0, fmt.Errorf("retirement_date: %w", err)
		}
	}
	return dateutil.StartingAge(b, r)
}

// ValidateConfiguration validates parameters loaded from a file or built from flags.
func (ip *InputParser) ValidateConfiguration(params *domain.SimulationParameters) error {
	if err := calculation.ValidateParameters(*params); err != nil {
		return err
	}
	if params.StdDevPercent < 0 {
		return fmt.Errorf("std_dev must be non-negative, got %g", params.StdDevPercent)
	}
	if params.DegreesOfFreedom < 0 {
		return fmt.Errorf("degrees_of_freedom must be non-negative, got %g", params.DegreesOfFreedom)
	}
	if params.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", params.Workers)
	}

	if params.Withdrawal == domain.WithdrawalPercentage {
		for i, b := range params.RateBands {
			if b.MinAge > b.MaxAge {
				return fmt.Errorf("rate band %d: min_age %d exceeds max_age %d", i, b.MinAge, b.MaxAge)
			}
		}
	}

	return nil
}
