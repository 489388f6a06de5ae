package calculation

import (
	"fmt"
	"time"

	"github.com/rpgo/portfolio-survival/internal/domain"
)

// seedFunc returns a pseudo-random seed for unseeded runs (override for deterministic tests).
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() int64) { seedFunc = f }

// DeterministicPath runs a single path of params with volatility removed, so every
// year earns exactly MeanReturnPercent. It reproduces the hand-checked scenarios
// (e.g. 100000 at 4% and 0% return for one year leaves 96000).
func DeterministicPath(params domain.SimulationParameters) (domain.PathResult, error) {
	if params.Years <= 0 {
		return domain.PathResult{}, fmt.Errorf("%w: got %d", ErrInvalidYears, params.Years)
	}
	model, err := NewReturnModel(domain.ReturnModelArithmetic, params.MeanReturnPercent, 0, 0, params.FeePercent)
	if err != nil {
		return domain.PathResult{}, err
	}
	strategy, err := NewWithdrawalStrategy(params)
	if err != nil {
		return domain.PathResult{}, err
	}
	return SimulatePath(params.InitialBalance, params.Years, strategy, model, NewRandomSource(1, 0)), nil
}

// ProjectDeterministic applies a flat percentage withdrawal and a constant return for
// the given number of years. A balance driven below zero ends the projection at 0.
func ProjectDeterministic(initialBalance, ratePercent, meanReturnPercent float64, years int) float64 {
	strategy := PercentageWithdrawal{Bands: []domain.RateBand{{MinAge: 0, MaxAge: years, RatePercent: ratePercent}}}
	mean := meanReturnPercent / 100

	balance := initialBalance
	for year := 0; year < years; year++ {
		balance -= strategy.Withdrawal(balance, year)
		if balance < 0 {
			return 0
		}
		balance *= 1 + mean
	}
	return balance
}

// CompareWithdrawalRates projects two flat withdrawal rates side by side.
func CompareWithdrawalRates(initialBalance, lowRatePercent, highRatePercent, meanReturnPercent float64, years int) domain.WithdrawalEffect {
	low := ProjectDeterministic(initialBalance, lowRatePercent, meanReturnPercent, years)
	high := ProjectDeterministic(initialBalance, highRatePercent, meanReturnPercent, years)
	return domain.WithdrawalEffect{
		InitialBalance:    initialBalance,
		MeanReturnPercent: meanReturnPercent,
		Years:             years,
		LowRatePercent:    lowRatePercent,
		HighRatePercent:   highRatePercent,
		LowRateBalance:    low,
		HighRateBalance:   high,
		Difference:        high - low,
	}
}
