package calculation

import (
	"fmt"
	"math"

	"github.com/rpgo/portfolio-survival/internal/domain"
)

// WithdrawalStrategy computes the amount taken out at the start of a year, before
// returns are applied, and decides what post-withdrawal balance counts as ruin.
type WithdrawalStrategy interface {
	// Withdrawal returns a non-negative amount for the given balance and year index (0-based).
	Withdrawal(balance float64, yearIndex int) float64
	// Ruined reports whether the balance left after a withdrawal ends the path.
	Ruined(balance float64) bool
}

// PercentageWithdrawal withdraws a share of the current balance, with the rate taken
// from an age-banded schedule.
type PercentageWithdrawal struct {
	Bands       []domain.RateBand
	StartingAge int
}

func (p PercentageWithdrawal) Withdrawal(balance float64, yearIndex int) float64 {
	rate := RateForAge(p.StartingAge+yearIndex, p.Bands)
	return balance * (rate / 100)
}

func (p PercentageWithdrawal) Ruined(balance float64) bool { return balance <= 0 }

// FixedWithdrawal withdraws a base amount indexed to inflation from year 0.
type FixedWithdrawal struct {
	BaseAmount       float64
	InflationPercent float64
}

// Withdrawal compounds inflation with a single power so long horizons do not drift.
func (f FixedWithdrawal) Withdrawal(_ float64, yearIndex int) float64 {
	if yearIndex == 0 {
		return f.BaseAmount
	}
	return f.BaseAmount * math.Pow(1+f.InflationPercent/100, float64(yearIndex))
}

// Ruined only triggers on a strictly negative balance; an exactly emptied account survives the year.
func (f FixedWithdrawal) Ruined(balance float64) bool { return balance < 0 }

// NewWithdrawalStrategy selects the strategy described by params.
func NewWithdrawalStrategy(params domain.SimulationParameters) (WithdrawalStrategy, error) {
	switch params.Withdrawal {
	case domain.WithdrawalPercentage:
		return PercentageWithdrawal{Bands: params.RateBands, StartingAge: params.StartingAge}, nil
	case domain.WithdrawalFixed:
		return FixedWithdrawal{BaseAmount: params.AnnualWithdrawal, InflationPercent: params.InflationPercent}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownWithdrawalKind, int(params.Withdrawal))
	}
}

// RateForAge returns the rate of the first band containing age, or the default ladder.
func RateForAge(age int, bands []domain.RateBand) float64 {
	for _, b := range bands {
		if b.Contains(age) {
			return b.RatePercent
		}
	}
	return DefaultRateForAge(age)
}

// DefaultRateForAge is the fallback withdrawal ladder used when no band matches.
func DefaultRateForAge(age int) float64 {
	switch {
	case age < 65:
		return 4
	case age < 75:
		return 5
	case age < 80:
		return 6
	case age < 85:
		return 7
	case age < 90:
		return 9
	case age < 95:
		return 11
	default:
		return 14
	}
}
