package output

import (
	"bytes"
	"fmt"

	"github.com/pharosnegocios/imobcalc/internal/domain"
)

// ConsoleFormatter is the compact console summary
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.SimulationReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("report cannot be nil")
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "INVESTMENT SIMULATION SUMMARY")
	if report.Name != "" {
		fmt.Fprintf(&buf, "Plan: %s\n", report.Name)
	}
	fmt.Fprintf(&buf, "Launch price: %s | Term: %d months | Scenarios: %d\n",
		FormatCurrency(report.Plan.LaunchPrice), report.Plan.ConstructionTermMonths, len(report.Scenarios))

	summary := report.Summary
	if best := summary.BestByNetProfit; best != nil {
		fmt.Fprintf(&buf, "Best: %s nets %s (%s a.a.)\n",
			best.Label, FormatCurrency(best.NetProfit), FormatPercentage(best.AnnualizedPercent))
	}
	if summary.BreakEvenMonth > 0 {
		fmt.Fprintf(&buf, "Beats Selic from month %d\n", summary.BreakEvenMonth)
	} else {
		fmt.Fprintln(&buf, "Never beats Selic")
	}
	return buf.Bytes(), nil
}
