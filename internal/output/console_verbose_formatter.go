package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pharosnegocios/imobcalc/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.SimulationReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("report cannot be nil")
	}

	var buf bytes.Buffer

	title := "INVESTMENT SCENARIO SIMULATION"
	if report.Name != "" {
		title += ": " + report.Name
	}
	fmt.Fprintln(&buf, TitleStyle.Render(title))
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf)

	writePlan(&buf, report.Plan)
	if report.Rates != nil {
		writeRates(&buf, report.Rates)
	}

	fmt.Fprintln(&buf, SectionStyle.Render("KEY ASSUMPTIONS"))
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, SectionStyle.Render("SALE SCENARIOS"))
	if len(report.Scenarios) == 0 {
		fmt.Fprintln(&buf, SubtitleStyle.Render("No scenarios in the horizon"))
	} else {
		fmt.Fprintln(&buf, scenarioTable(report.Scenarios, report.Summary.BestByNetProfit).Render())
	}
	fmt.Fprintln(&buf)

	writeSummary(&buf, report.Summary)

	return buf.Bytes(), nil
}

func metricLine(buf *bytes.Buffer, label, value string) {
	fmt.Fprintf(buf, "%s %s\n", MetricLabelStyle.Render(label), MetricValueStyle.Render(value))
}

func writePlan(buf *bytes.Buffer, plan domain.InvestmentPlan) {
	fmt.Fprintln(buf, SectionStyle.Render("PAYMENT PLAN"))
	metricLine(buf, "Launch price:", FormatCurrency(plan.LaunchPrice))
	metricLine(buf, "Entry payment:", FormatCurrency(plan.EntryPayment))
	if plan.MonthlyInstallments > 0 {
		metricLine(buf, "Monthly installments:", fmt.Sprintf("%d x %s", plan.MonthlyInstallments, FormatCurrency(plan.MonthlyInstallmentValue)))
	}
	if plan.SemiannualInstallments > 0 {
		metricLine(buf, "Semiannual installments:", fmt.Sprintf("%d x %s", plan.SemiannualInstallments, FormatCurrency(plan.SemiannualInstallmentValue)))
	}
	if plan.AnnualInstallments > 0 {
		metricLine(buf, "Annual installments:", fmt.Sprintf("%d x %s", plan.AnnualInstallments, FormatCurrency(plan.AnnualInstallmentValue)))
	}
	metricLine(buf, "Balance at key delivery:", FormatCurrency(plan.KeyDeliveryBalance))
	metricLine(buf, "Construction term:", fmt.Sprintf("%d months", plan.ConstructionTermMonths))
	metricLine(buf, "Correction:", fmt.Sprintf("%s at %s a.a.", plan.CorrectionIndex, FormatPercentage(plan.AnnualCorrectionRate)))
	metricLine(buf, "Appreciation:", FormatPercentage(plan.AnnualAppreciationRate)+" a.a.")
	metricLine(buf, "Sale commission:", FormatPercentage(plan.SaleCommissionPercent))
	metricLine(buf, "Selic / CDB / LCI:", fmt.Sprintf("%s / %s / %s",
		FormatPercentage(plan.PolicyRate), FormatPercentage(plan.InterbankRate), FormatPercentage(plan.TaxExemptRate)))
	fmt.Fprintln(buf)
}

func writeRates(buf *bytes.Buffer, rates *domain.ReferenceRates) {
	fmt.Fprintln(buf, SectionStyle.Render("REFERENCE RATES"))
	metricLine(buf, "Selic:", FormatPercentage(rates.PolicyRate))
	metricLine(buf, "IPCA (12 months):", FormatPercentage(rates.InflationRate))
	metricLine(buf, "CDI:", FormatPercentage(rates.InterbankRate))
	switch {
	case rates.Fallback && len(rates.Failed) > 0:
		metricLine(buf, "Source:", "defaults for "+strings.Join(rates.Failed, ", "))
	case rates.Fallback:
		metricLine(buf, "Source:", "defaults")
	case rates.UpdatedAt != nil:
		metricLine(buf, "Source:", "BCB, "+rates.UpdatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(buf)
}

func scenarioTable(scenarios []domain.ScenarioResult, best *domain.ScenarioResult) *table.Table {
	rows := make([][]string, 0, len(scenarios))
	bestRow := -1
	for i, s := range scenarios {
		if best != nil && s.Month == best.Month {
			bestRow = i
		}
		rows = append(rows, []string{
			s.Label,
			FormatCurrency(s.PropertyValue),
			FormatCurrency(s.TotalInvested),
			FormatCurrency(s.CorrectedInvested),
			FormatCurrency(s.TaxDue),
			FormatCurrency(s.NetProfit),
			FormatPercentage(s.ProfitabilityPercent),
			FormatPercentage(s.AnnualizedPercent),
			FormatCurrency(s.PolicyRateYield),
			FormatCurrency(s.InterbankRateYield),
			FormatCurrency(s.TaxExemptYield),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(TableBorderStyle).
		Headers("Sale", "Value", "Invested", "Corrected", "Tax", "Net profit", "Profit", "Annualized", "Selic", "CDB", "LCI").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return TableHeaderStyle
			case row == bestRow:
				return TableHighlightStyle
			}
			return TableCellStyle
		}).
		Rows(rows...)
}

func writeSummary(buf *bytes.Buffer, summary domain.SimulationSummary) {
	fmt.Fprintln(buf, SectionStyle.Render("SUMMARY"))
	if best := summary.BestByNetProfit; best != nil {
		style := MetricTrendStyle(best.NetProfit.IsPositive())
		metricLine(buf, "Best net profit:", style.Render(fmt.Sprintf("%s (%s)", FormatCurrency(best.NetProfit), best.Label)))
	}
	if best := summary.BestByAnnualized; best != nil {
		metricLine(buf, "Best annualized:", fmt.Sprintf("%s a.a. (%s)", FormatPercentage(best.AnnualizedPercent), best.Label))
	}
	if d := summary.AtDelivery; d != nil {
		metricLine(buf, "Net profit at delivery:", FormatCurrency(d.NetProfit))
	}
	if summary.BreakEvenMonth > 0 {
		metricLine(buf, "Beats Selic from:", fmt.Sprintf("month %d", summary.BreakEvenMonth))
	} else {
		metricLine(buf, "Beats Selic from:", "never")
	}
	metricLine(buf, "Acquisition costs:", FormatCurrency(summary.AcquisitionCosts))
	fmt.Fprintln(buf)

	if len(summary.Recommendations) > 0 {
		fmt.Fprintln(buf, SectionStyle.Render("RECOMMENDATIONS"))
		for _, rec := range summary.Recommendations {
			fmt.Fprintf(buf, "• %s\n", rec)
		}
	}
}
