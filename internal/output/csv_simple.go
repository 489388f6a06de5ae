package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/portfolio-survival/internal/domain"
)

// CSVSummarizer writes one row per aggregate result, in report order.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string      { return "csv" }
func (c CSVSummarizer) Extension() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.RunReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Model", "Simulations", "Years", "Seed", "Failures", "FailureRatePercent", "MeanFinalBalance", "P10", "P25", "P50", "P75", "P90"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, res := range report.Results {
		row := []string{
			res.ModelKind.String(),
			strconv.Itoa(res.SimulationCount),
			strconv.Itoa(res.Years),
			strconv.FormatInt(res.Seed, 10),
			strconv.Itoa(res.FailureCount),
			fixed(res.FailureRatePercent, 4),
			fixed(res.MeanFinalBalance, 2),
			fixed(res.P10, 2),
			fixed(res.P25, 2),
			fixed(res.P50, 2),
			fixed(res.P75, 2),
			fixed(res.P90, 2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func fixed(v float64, places int) string {
	return strconv.FormatFloat(v, 'f', places, 64)
}
