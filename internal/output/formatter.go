package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rpgo/portfolio-survival/internal/domain"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(report *domain.RunReport) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
	// Extension is the file extension used when the output is written to disk.
	Extension() string
}

// nowFunc stamps written report files (override in tests).
var nowFunc = time.Now

// WriteFormatted runs a formatter and writes output to a timestamped file in dir.
func WriteFormatted(f Formatter, report *domain.RunReport, dir string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := filepath.Join(dir, fmt.Sprintf("survival_report_%s.%s", nowFunc().Format("20060102_150405"), f.Extension()))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVSummarizer{},
	JSONFormatter{},
}

// GetFormatterByName fetches a registered formatter, resolving aliases.
func GetFormatterByName(name string) (Formatter, error) {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, name,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"text":        "console",
	"table":       "console",
	"csv-summary": "csv",
	"json-pretty": "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
