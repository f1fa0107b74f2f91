package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rgehrsitz/opentax/internal/domain"
)

// Formatter renders a tax summary in one output format
type Formatter interface {
	Name() string
	Format(summary *domain.TaxSummary) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(summary *domain.TaxSummary) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(summary *domain.TaxSummary) ([]byte, error) {
	return f.F(summary)
}

var formatters = map[string]Formatter{}

// aliases map alternate spellings onto registered names
var aliases = map[string]string{
	"verbose":         "console",
	"console-verbose": "console",
	"text":            "console",
	"lite":            "console-lite",
	"summary":         "console-lite",
}

func register(f Formatter) {
	formatters[f.Name()] = f
}

func init() {
	register(ConsoleFormatter{})
	register(ConsoleLiteFormatter{})
	register(JSONFormatter{Indent: true})
	register(CSVSummarizer{})
	register(DetailedCSVFormatter{})
}

// GetFormatterByName returns the formatter registered under name or alias,
// or nil
func GetFormatterByName(name string) Formatter {
	if target, ok := aliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames lists the registered formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases, sorted
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted writes the formatted summary to a timestamped file in the
// working directory and returns its name
func WriteFormatted(f Formatter, summary *domain.TaxSummary, ext string) (string, error) {
	data, err := f.Format(summary)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("tax_summary_%d_%s.%s", summary.TaxYear, time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
