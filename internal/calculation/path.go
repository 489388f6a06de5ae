package calculation

import (
	"math"

	"github.com/rpgo/portfolio-survival/internal/domain"
)

// SimulatePath runs one account through every year: withdraw, check ruin, apply a
// sampled return, check for a non-finite balance. A failed path always reports a
// zero final balance.
func SimulatePath(initialBalance float64, years int, strategy WithdrawalStrategy, model *ReturnModel, src *RandomSource) domain.PathResult {
	balance := initialBalance

	for year := 0; year < years; year++ {
		balance -= strategy.Withdrawal(balance, year)
		if strategy.Ruined(balance) {
			return domain.PathResult{FinalBalance: 0, Failed: true}
		}

		balance *= 1 + model.Sample(src)
		if math.IsNaN(balance) || math.IsInf(balance, 0) {
			return domain.PathResult{FinalBalance: 0, Failed: true}
		}
	}

	return domain.PathResult{FinalBalance: balance}
}
