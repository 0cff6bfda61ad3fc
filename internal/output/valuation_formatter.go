package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pharosnegocios/imobcalc/internal/domain"
)

func (c ConsoleVerboseFormatter) FormatValuation(report *domain.ValuationReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("report cannot be nil")
	}

	var buf bytes.Buffer
	subject := report.Subject

	fmt.Fprintln(&buf, TitleStyle.Render("COMPARATIVE MARKET VALUATION"))
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, SectionStyle.Render("SUBJECT PROPERTY"))
	location := strings.Trim(strings.Join([]string{subject.Neighborhood, subject.City}, ", "), ", ")
	if location != "" {
		metricLine(&buf, "Location:", location)
	}
	if subject.Kind != "" {
		metricLine(&buf, "Kind:", subject.Kind)
	}
	metricLine(&buf, "Private area:", subject.PrivateArea.String()+" m²")
	metricLine(&buf, "Building age:", fmt.Sprintf("%d years", subject.BuildingAge))
	metricLine(&buf, "Amenities:", string(subject.Amenities))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, SectionStyle.Render("COMPARABLES"))
	rows := make([][]string, 0, len(report.Comparables))
	for _, comp := range report.Comparables {
		active := "yes"
		if !comp.Active {
			active = "no"
		}
		rows = append(rows, []string{
			comp.Code,
			comp.Project,
			FormatCurrency(comp.TotalPrice),
			comp.PrivateArea.String(),
			FormatCurrency(comp.PricePerArea()),
			comp.Weight.StringFixed(2),
			active,
		})
	}
	inactive := func(row int) bool {
		return row >= 0 && row < len(report.Comparables) && !report.Comparables[row].Active
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(TableBorderStyle).
		Headers("Code", "Project", "Price", "Area", "R$/m²", "Weight", "Active").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return TableHeaderStyle
			case inactive(row):
				return TableCellStyle.Foreground(ColorMuted)
			}
			return TableCellStyle
		}).
		Rows(rows...)
	fmt.Fprintln(&buf, t.Render())
	fmt.Fprintln(&buf)

	result := report.Result
	fmt.Fprintln(&buf, SectionStyle.Render("RESULT"))
	metricLine(&buf, "Active comparables:", fmt.Sprintf("%d", result.ActiveCount))
	metricLine(&buf, "Weighted R$/m²:", FormatCurrency(result.WeightedPricePerArea))
	metricLine(&buf, "Commercial value:", FormatCurrency(result.CommercialValue))
	metricLine(&buf, "Appraised value:", FormatCurrency(result.AppraisedValue)+
		fmt.Sprintf(" (factor %s)", result.AdjustmentFactor.StringFixed(2)))
	metricLine(&buf, "Maximum value:", FormatCurrency(result.MaximumValue))
	if report.Policy != "" {
		metricLine(&buf, "Weight policy:", report.Policy)
	}

	return buf.Bytes(), nil
}
