package output

import (
	"github.com/rpgo/portfolio-survival/internal/domain"
)

// Recommendation summarises which return model produced the most robust outcome.
type Recommendation struct {
	Model              domain.ReturnModelKind
	FailureRatePercent float64
	MedianFinalBalance float64
	// Spread is the P90 - P10 range of final balances.
	Spread float64
}

// AnalyzeResults picks the result with the lowest failure rate, ties broken by the
// higher median. The boolean is false when the report has no results.
func AnalyzeResults(report *domain.RunReport) (Recommendation, bool) {
	if report == nil || len(report.Results) == 0 {
		return Recommendation{}, false
	}
	best := report.Results[0]
	for _, res := range report.Results[1:] {
		if res.FailureRatePercent < best.FailureRatePercent ||
			(res.FailureRatePercent == best.FailureRatePercent && res.P50 > best.P50) {
			best = res
		}
	}
	return Recommendation{
		Model:              best.ModelKind,
		FailureRatePercent: best.FailureRatePercent,
		MedianFinalBalance: best.P50,
		Spread:             best.P90 - best.P10,
	}, true
}
