package output

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary = lipgloss.Color("#1E6FD9")
	ColorSuccess = lipgloss.Color("#2E9E5B")
	ColorDanger  = lipgloss.Color("#D64545")
	ColorMuted   = lipgloss.Color("#8A8F98")
	ColorBorder  = lipgloss.Color("#5C6370")

	ColorChartLine1 = lipgloss.Color("#1E6FD9")
	ColorChartLine2 = lipgloss.Color("#E5A50A")
	ColorChartLine3 = lipgloss.Color("#2E9E5B")
	ColorChartLine4 = lipgloss.Color("#A347BA")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Width(28)

	MetricValueStyle = lipgloss.NewStyle().Bold(true)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	TableHeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(0, 1)
	TableCellStyle      = lipgloss.NewStyle().Padding(0, 1)
	TableHighlightStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(ColorSuccess)
	TableBorderStyle    = lipgloss.NewStyle().Foreground(ColorBorder)
)

// MetricTrendStyle colors a value by sign
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for a change direction
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▲"
	}
	return "▼"
}
