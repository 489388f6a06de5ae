package domain

import (
	"fmt"
	"strings"
)

// ReturnModelKind selects the distribution family used to draw annual returns.
type ReturnModelKind int

const (
	ReturnModelArithmetic ReturnModelKind = iota
	ReturnModelLognormal
	ReturnModelStudentT
)

// ReturnModelKinds lists every supported family in display order.
var ReturnModelKinds = []ReturnModelKind{ReturnModelArithmetic, ReturnModelLognormal, ReturnModelStudentT}

func (k ReturnModelKind) String() string {
	switch k {
	case ReturnModelArithmetic:
		return "arithmetic"
	case ReturnModelLognormal:
		return "lognormal"
	case ReturnModelStudentT:
		return "studentt"
	default:
		return fmt.Sprintf("ReturnModelKind(%d)", int(k))
	}
}

// Label returns the human readable name used in reports.
func (k ReturnModelKind) Label() string {
	switch k {
	case ReturnModelArithmetic:
		return "Arithmetic Normal"
	case ReturnModelLognormal:
		return "Lognormal"
	case ReturnModelStudentT:
		return "Student-t"
	default:
		return k.String()
	}
}

// Valid reports whether k is one of the supported families.
func (k ReturnModelKind) Valid() bool {
	return k >= ReturnModelArithmetic && k <= ReturnModelStudentT
}

// ParseReturnModelKind parses a model tag such as "lognormal" or "student-t".
func ParseReturnModelKind(s string) (ReturnModelKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "arithmetic", "normal", "arithmetic_normal":
		return ReturnModelArithmetic, nil
	case "lognormal", "log_normal":
		return ReturnModelLognormal, nil
	case "studentt", "student-t", "student_t", "t":
		return ReturnModelStudentT, nil
	default:
		return 0, fmt.Errorf("unknown return model %q", s)
	}
}

func (k ReturnModelKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("unknown return model %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *ReturnModelKind) UnmarshalText(text []byte) error {
	parsed, err := ParseReturnModelKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// WithdrawalKind selects how the annual withdrawal is computed.
type WithdrawalKind int

const (
	WithdrawalPercentage WithdrawalKind = iota
	WithdrawalFixed
)

func (k WithdrawalKind) String() string {
	switch k {
	case WithdrawalPercentage:
		return "percentage"
	case WithdrawalFixed:
		return "fixed"
	default:
		return fmt.Sprintf("WithdrawalKind(%d)", int(k))
	}
}

// Valid reports whether k is a supported withdrawal kind.
func (k WithdrawalKind) Valid() bool {
	return k == WithdrawalPercentage || k == WithdrawalFixed
}

// ParseWithdrawalKind parses "percentage" or "fixed" (and a few synonyms).
func ParseWithdrawalKind(s string) (WithdrawalKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "percentage", "percent", "fixed_percentage":
		return WithdrawalPercentage, nil
	case "fixed", "fixed_amount", "amount":
		return WithdrawalFixed, nil
	default:
		return 0, fmt.Errorf("unknown withdrawal kind %q", s)
	}
}

func (k WithdrawalKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("unknown withdrawal kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *WithdrawalKind) UnmarshalText(text []byte) error {
	parsed, err := ParseWithdrawalKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// RateBand maps an inclusive age interval to a withdrawal rate in percent.
type RateBand struct {
	MinAge      int     `yaml:"min_age" json:"min_age"`
	MaxAge      int     `yaml:"max_age" json:"max_age"`
	RatePercent float64 `yaml:"rate_percent" json:"rate_percent"`
}

// Contains reports whether age falls inside the band.
func (b RateBand) Contains(age int) bool {
	return age >= b.MinAge && age <= b.MaxAge
}

// SimulationParameters is the immutable input of one Monte Carlo run.
// Percent fields are on the percent scale (6 means 6%). The YAML form is the
// scenario-file layout, so saved parameters load back with --config.
type SimulationParameters struct {
	InitialBalance  float64 `yaml:"initial_balance" json:"initial_balance"`
	Years           int     `yaml:"years" json:"years"`
	SimulationCount int     `yaml:"simulations" json:"simulations"`

	ReturnModel       ReturnModelKind `yaml:"return_model" json:"return_model"`
	MeanReturnPercent float64         `yaml:"mean_return" json:"mean_return_percent"`
	StdDevPercent     float64         `yaml:"std_dev" json:"std_dev_percent"`
	DegreesOfFreedom  float64         `yaml:"degrees_of_freedom" json:"degrees_of_freedom"`
	FeePercent        float64         `yaml:"fee_percent,omitempty" json:"fee_percent,omitempty"`

	Withdrawal WithdrawalKind `yaml:"withdrawal" json:"withdrawal"`

	// Percentage mode
	RateBands   []RateBand `yaml:"rate_bands,omitempty" json:"rate_bands,omitempty"`
	StartingAge int        `yaml:"starting_age" json:"starting_age"`

	// Fixed mode
	AnnualWithdrawal float64 `yaml:"annual_withdrawal,omitempty" json:"annual_withdrawal,omitempty"`
	InflationPercent float64 `yaml:"inflation_percent,omitempty" json:"inflation_percent,omitempty"`

	// Seed of 0 means time-seeded. Workers of 0 means one per CPU.
	Seed    int64 `yaml:"seed,omitempty" json:"seed,omitempty"`
	Workers int   `yaml:"workers,omitempty" json:"workers,omitempty"`
}

// PathResult is the outcome of one simulated account.
type PathResult struct {
	FinalBalance float64 `json:"final_balance"`
	Failed       bool    `json:"failed"`
}

// AggregateResult summarises every path of a run.
type AggregateResult struct {
	ModelKind          ReturnModelKind `yaml:"model" json:"model"`
	SimulationCount    int             `yaml:"simulations" json:"simulations"`
	Years              int             `yaml:"years" json:"years"`
	Seed               int64           `yaml:"seed" json:"seed"`
	FailureCount       int             `yaml:"failure_count" json:"failure_count"`
	FailureRatePercent float64         `yaml:"failure_rate_percent" json:"failure_rate_percent"`
	MeanFinalBalance   float64         `yaml:"mean_final_balance" json:"mean_final_balance"`
	P10                float64         `yaml:"p10" json:"p10"`
	P25                float64         `yaml:"p25" json:"p25"`
	P50                float64         `yaml:"p50" json:"p50"`
	P75                float64         `yaml:"p75" json:"p75"`
	P90                float64         `yaml:"p90" json:"p90"`
}

// SuccessRatePercent is the complement of the failure rate.
func (r AggregateResult) SuccessRatePercent() float64 {
	return 100 - r.FailureRatePercent
}

// WithdrawalEffect compares two percentage withdrawal rates under a deterministic return.
type WithdrawalEffect struct {
	InitialBalance    float64 `json:"initial_balance"`
	MeanReturnPercent float64 `json:"mean_return_percent"`
	Years             int     `json:"years"`
	LowRatePercent    float64 `json:"low_rate_percent"`
	HighRatePercent   float64 `json:"high_rate_percent"`
	LowRateBalance    float64 `json:"low_rate_balance"`
	HighRateBalance   float64 `json:"high_rate_balance"`
	Difference        float64 `json:"difference"`
}
