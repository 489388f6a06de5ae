package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rpgo/portfolio-survival/internal/domain"
)

// ConsoleFormatter renders a comparison table of all results in the report.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *domain.RunReport) ([]byte, error) {
	var buf bytes.Buffer
	title := "PORTFOLIO SURVIVAL SIMULATION"
	if report.Name != "" {
		title += ": " + report.Name
	}
	fmt.Fprintln(&buf, title)
	fmt.Fprintln(&buf, strings.Repeat("=", len(title)))
	for _, line := range GenerateAssumptions(report.Parameters) {
		fmt.Fprintln(&buf, line)
	}
	fmt.Fprintln(&buf)

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Model\tFailure rate\tSuccess rate\tMedian final\t10th pct\t90th pct\tMean final\t")
	for _, res := range report.Results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			modelLabel(res, report.Parameters),
			FormatPercentage(res.FailureRatePercent),
			FormatPercentage(res.SuccessRatePercent()),
			FormatCurrency(res.P50),
			FormatCurrency(res.P10),
			FormatCurrency(res.P90),
			FormatCurrency(res.MeanFinalBalance),
		)
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}

	if rec, ok := AnalyzeResults(report); ok && len(report.Results) > 1 {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Most robust: %s (failure %s, median %s)\n",
			rec.Model.Label(), FormatPercentage(rec.FailureRatePercent), FormatCurrency(rec.MedianFinalBalance))
	}
	return buf.Bytes(), nil
}

func modelLabel(res domain.AggregateResult, p domain.SimulationParameters) string {
	if res.ModelKind == domain.ReturnModelStudentT && p.DegreesOfFreedom > 0 {
		return fmt.Sprintf("%s (df=%g)", res.ModelKind.Label(), p.DegreesOfFreedom)
	}
	return res.ModelKind.Label()
}

// FormatWithdrawalEffect renders a side-by-side deterministic projection of two rates.
func FormatWithdrawalEffect(e domain.WithdrawalEffect) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Initial: %s\n", FormatCurrency(e.InitialBalance))
	fmt.Fprintf(&buf, "After %d years with %s withdrawal, balance = %s\n",
		e.Years, FormatPercentage(e.LowRatePercent), FormatCurrency(e.LowRateBalance))
	fmt.Fprintf(&buf, "After %d years with %s withdrawal, balance = %s\n",
		e.Years, FormatPercentage(e.HighRatePercent), FormatCurrency(e.HighRateBalance))
	fmt.Fprintf(&buf, "Difference (%s - %s): %s\n",
		FormatPercentage(e.HighRatePercent), FormatPercentage(e.LowRatePercent), FormatCurrency(e.Difference))
	return buf.String()
}
