package output

import (
	"encoding/json"

	"github.com/rpgo/portfolio-survival/internal/domain"
)

// JSONFormatter serializes the run report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string      { return "json" }
func (j JSONFormatter) Extension() string { return "json" }

func (j JSONFormatter) Format(report *domain.RunReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
