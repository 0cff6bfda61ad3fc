package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pharosnegocios/imobcalc/internal/domain"
)

func (c ConsoleVerboseFormatter) FormatSensitivityAnalysis(analysis *domain.SensitivityAnalysis) ([]byte, error) {
	if analysis == nil || len(analysis.Points) == 0 {
		return nil, fmt.Errorf("no points in analysis")
	}

	var buf bytes.Buffer
	param := analysis.Parameter

	fmt.Fprintln(&buf, TitleStyle.Render("SENSITIVITY ANALYSIS: "+strings.ToUpper(strings.ReplaceAll(param.Name, "_", " "))))
	fmt.Fprintln(&buf, strings.Repeat("=", 65))
	fmt.Fprintf(&buf, "Sale at: %s\n", analysis.Base.Label)
	fmt.Fprintf(&buf, "Base case: %s = %s\n", param.Name, FormatPercentage(analysis.BaseValue))
	fmt.Fprintf(&buf, "Range: %s to %s (%d steps)\n", FormatPercentage(param.MinValue), FormatPercentage(param.MaxValue), param.Steps)
	if param.Description != "" {
		fmt.Fprintf(&buf, "Description: %s\n", param.Description)
	}
	fmt.Fprintln(&buf)

	rows := make([][]string, 0, len(analysis.Points))
	for _, p := range analysis.Points {
		value := FormatPercentage(p.Value)
		if p.Value.Equal(analysis.BaseValue) {
			value += " ← BASE"
		}
		beats := "no"
		if p.BeatsPolicyRate {
			beats = "yes"
		}
		rows = append(rows, []string{
			value,
			FormatCurrency(p.NetProfit),
			FormatCurrency(p.NetProfitDelta),
			FormatPercentage(p.AnnualizedPercent),
			beats,
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(TableBorderStyle).
		Headers(param.Name, "Net profit", "Δ vs base", "Annualized", "Beats Selic").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			if col == 2 && row >= 0 && row < len(analysis.Points) {
				return TableCellStyle.Foreground(MetricTrendStyle(!analysis.Points[row].NetProfitDelta.IsNegative()).GetForeground())
			}
			return TableCellStyle
		}).
		Rows(rows...)
	fmt.Fprintln(&buf, t.Render())
	fmt.Fprintln(&buf)

	first, last := analysis.Points[0], analysis.Points[len(analysis.Points)-1]
	if span := last.Value.Sub(first.Value); !span.IsZero() {
		perPoint := last.NetProfit.Sub(first.NetProfit).Div(span)
		fmt.Fprintf(&buf, "SENSITIVITY: net profit moves %s per 1 p.p. of %s\n", FormatCurrency(perPoint), param.Name)
	}

	riskEmoji := ""
	switch analysis.RiskLevel {
	case "LOW":
		riskEmoji = "✅"
	case "MEDIUM":
		riskEmoji = "⚠️"
	case "HIGH":
		riskEmoji = "🔴"
	}
	fmt.Fprintf(&buf, "RISK LEVEL: %s %s\n", riskEmoji, analysis.RiskLevel)

	return buf.Bytes(), nil
}

func (c CSVSummarizer) FormatSensitivityAnalysis(analysis *domain.SensitivityAnalysis) ([]byte, error) {
	if analysis == nil {
		return nil, fmt.Errorf("analysis cannot be nil")
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"parameter_name", "parameter_value", "month", "net_profit", "annualized_percent", "net_profit_delta", "beats_policy_rate"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, p := range analysis.Points {
		row := []string{
			analysis.Parameter.Name,
			p.Value.String(),
			intToString(analysis.Month),
			p.NetProfit.StringFixed(0),
			p.AnnualizedPercent.StringFixed(2),
			p.NetProfitDelta.StringFixed(0),
			fmt.Sprintf("%t", p.BeatsPolicyRate),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
