package output

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/rpgo/portfolio-survival/internal/domain"
)

// GenerateAssumptions lists the modeling assumptions behind a run, one line each.
func GenerateAssumptions(p domain.SimulationParameters) []string {
	lines := []string{
		fmt.Sprintf("Initial balance: %s  Years: %d  Paths: %s",
			FormatCurrency(p.InitialBalance), p.Years, humanize.Comma(int64(p.SimulationCount))),
	}

	returns := fmt.Sprintf("Returns: mean %s, std dev %s", FormatPercentage(p.MeanReturnPercent), FormatPercentage(p.StdDevPercent))
	if p.FeePercent != 0 {
		returns += ", fee " + FormatPercentage(p.FeePercent)
	}
	lines = append(lines, returns)

	switch p.Withdrawal {
	case domain.WithdrawalFixed:
		lines = append(lines, fmt.Sprintf("Withdrawal: fixed %s per year, inflation %s",
			FormatCurrency(p.AnnualWithdrawal), FormatPercentage(p.InflationPercent)))
	default:
		bands := make([]string, 0, len(p.RateBands))
		for _, b := range p.RateBands {
			bands = append(bands, fmt.Sprintf("%d-%d: %s", b.MinAge, b.MaxAge, FormatPercentage(b.RatePercent)))
		}
		schedule := "default ladder"
		if len(bands) > 0 {
			schedule = strings.Join(bands, ", ")
		}
		lines = append(lines, fmt.Sprintf("Withdrawal: percentage from age %d (%s)", p.StartingAge, schedule))
	}
	return lines
}
