package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders a simulation report
type Formatter interface {
	Name() string
	Format(report *domain.SimulationReport) ([]byte, error)
}

// ValuationFormatter renders a valuation report
type ValuationFormatter interface {
	Name() string
	FormatValuation(report *domain.ValuationReport) ([]byte, error)
}

// SensitivityFormatter renders a single-parameter sweep
type SensitivityFormatter interface {
	Name() string
	FormatSensitivityAnalysis(analysis *domain.SensitivityAnalysis) ([]byte, error)
}

// FormatterFunc adapts a function into a Formatter
type FormatterFunc struct {
	ID string
	F  func(report *domain.SimulationReport) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *domain.SimulationReport) ([]byte, error) {
	return f.F(report)
}

var formatters = []Formatter{
	ConsoleFormatter{},
	ConsoleVerboseFormatter{},
	CSVSummarizer{},
	ChartCSVFormatter{},
	ChartConsoleFormatter{},
	JSONFormatter{},
	YAMLFormatter{},
}

var aliasMap = map[string]string{
	"verbose":         "console",
	"console-verbose": "console",
	"table":           "console",
	"text":            "console",
	"lite":            "console-lite",
	"summary":         "console-lite",
	"yml":             "yaml",
	"ascii":           "chart",
}

func resolveName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliasMap[name]; ok {
		return canonical
	}
	return name
}

// GetFormatterByName returns the formatter registered under name or one of
// its aliases, or nil.
func GetFormatterByName(name string) Formatter {
	name = resolveName(name)
	for _, f := range formatters {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// GetValuationFormatterByName returns a formatter that can render
// valuation reports, or nil.
func GetValuationFormatterByName(name string) ValuationFormatter {
	vf, ok := GetFormatterByName(name).(ValuationFormatter)
	if !ok {
		return nil
	}
	return vf
}

// GetSensitivityFormatterByName returns a formatter that can render
// sensitivity sweeps, or nil.
func GetSensitivityFormatterByName(name string) SensitivityFormatter {
	sf, ok := GetFormatterByName(name).(SensitivityFormatter)
	if !ok {
		return nil
	}
	return sf
}

// AvailableFormatterNames lists the registered formatter names
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for _, f := range formatters {
		names = append(names, f.Name())
	}
	return names
}

// AvailableFormatAliases lists the accepted aliases, sorted
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(aliasMap))
	for alias := range aliasMap {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted renders report and writes it to a timestamped file in the
// working directory, returning the file name.
func WriteFormatted(f Formatter, report *domain.SimulationReport, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("simulation_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatCurrency formats an amount as whole reais with pt-BR digit grouping
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + "R$ " + brl.Sprintf("%d", rounded.IntPart())
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatCompact abbreviates thousands and millions
func FormatCompact(d decimal.Decimal) string {
	switch {
	case d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1_000_000)):
		return d.Div(decimal.NewFromInt(1_000_000)).StringFixed(2) + "M"
	case d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)):
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}
