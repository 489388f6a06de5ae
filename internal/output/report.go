package output

import (
	"fmt"
	"io"
	"os"

	"github.com/rpgo/portfolio-survival/internal/domain"
	"gopkg.in/yaml.v3"
)

// WriteReport formats the report with the named formatter and writes it to w.
func WriteReport(w io.Writer, report *domain.RunReport, format string) error {
	f, err := GetFormatterByName(format)
	if err != nil {
		return err
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// GenerateReport writes the report to a timestamped file in dir and returns its path.
func GenerateReport(report *domain.RunReport, format, dir string) (string, error) {
	f, err := GetFormatterByName(format)
	if err != nil {
		return "", err
	}
	return WriteFormatted(f, report, dir)
}

// SaveParameters writes the effective parameters as YAML so a run can be replayed.
func SaveParameters(params domain.SimulationParameters, filename string) error {
	b, err := yaml.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal parameters: %w", err)
	}
	return os.WriteFile(filename, b, 0644)
}
