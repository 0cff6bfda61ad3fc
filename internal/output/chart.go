package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pharosnegocios/imobcalc/internal/domain"
)

// DataSeries is a single line in a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart draws line series on a character grid
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string // X-axis labels
	Width      int
	Height     int
	ShowLegend bool
	XAxisLabel string
}

// NewASCIIChart creates a chart with the default size
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      72,
		Height:     16,
		ShowLegend: true,
	}
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the X-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

const yAxisWidth = 12

// Render returns the chart as text
func (c *ASCIIChart) Render() string {
	if len(c.Series) == 0 || c.Width <= yAxisWidth+1 || c.Height < 2 {
		return SubtitleStyle.Render("No data to display")
	}

	var content strings.Builder
	if c.Title != "" {
		content.WriteString(TitleStyle.Render(c.Title))
		content.WriteString("\n\n")
	}

	minVal, maxVal := c.bounds()
	content.WriteString(c.renderGrid(minVal, maxVal))

	if c.XAxisLabel != "" {
		content.WriteString("\n")
		content.WriteString(SubtitleStyle.Render(c.XAxisLabel))
	}

	if c.ShowLegend && len(c.Series) > 1 {
		content.WriteString("\n\n")
		content.WriteString(c.renderLegend())
	}

	return content.String()
}

// bounds finds the min and max across all series with 10% padding. A flat
// series gets a unit band so the scale never divides by zero.
func (c *ASCIIChart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, series := range c.Series {
		for _, point := range series.Points {
			lo = math.Min(lo, point)
			hi = math.Max(hi, point)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if hi == lo {
		return lo - 1, hi + 1
	}
	padding := (hi - lo) * 0.1
	return lo - padding, hi + padding
}

func (c *ASCIIChart) position(i, n, chartWidth int, point, minVal, maxVal float64) (int, int) {
	x := 0
	if n > 1 {
		x = int(float64(i) / float64(n-1) * float64(chartWidth-1))
	}
	y := c.Height - 1 - int((point-minVal)/(maxVal-minVal)*float64(c.Height-1))
	return x, y
}

func (c *ASCIIChart) renderGrid(minVal, maxVal float64) string {
	chartWidth := c.Width - yAxisWidth

	grid := make([][]rune, c.Height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", chartWidth))
	}

	for seriesIdx, series := range c.Series {
		pointChar := seriesChar(seriesIdx)
		n := len(series.Points)
		prevX, prevY := 0, 0
		for i, point := range series.Points {
			x, y := c.position(i, n, chartWidth, point, minVal, maxVal)
			if i > 0 {
				drawLine(grid, prevX, prevY, x, y, pointChar)
			} else if inGrid(grid, x, y) {
				grid[y][x] = pointChar
			}
			prevX, prevY = x, y
		}
	}

	var out strings.Builder
	axisStyle := lipgloss.NewStyle().Foreground(ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	valueRange := maxVal - minVal
	for i, row := range grid {
		yValue := maxVal - (float64(i)/float64(c.Height-1))*valueRange
		out.WriteString(axisStyle.Render(formatChartValue(yValue)))
		out.WriteString(" │ ")
		out.WriteString(string(row))
		out.WriteString("\n")
	}

	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", chartWidth))
	out.WriteString("\n")

	if len(c.Labels) > 0 {
		out.WriteString(c.renderXAxisLabels(chartWidth))
	}

	return out.String()
}

func seriesChar(index int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[index%len(chars)]
}

func inGrid(grid [][]rune, x, y int) bool {
	return y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y])
}

// drawLine joins two points using Bresenham's algorithm without
// overwriting cells already drawn.
func drawLine(grid [][]rune, x0, y0, x1, y1 int, char rune) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	x, y := x0, y0
	for {
		if inGrid(grid, x, y) && grid[y][x] == ' ' {
			grid[y][x] = char
		}
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// renderXAxisLabels spreads at most five labels along the axis
func (c *ASCIIChart) renderXAxisLabels(chartWidth int) string {
	const maxLabels = 5
	step := max(len(c.Labels)/maxLabels, 1)
	spacing := chartWidth / maxLabels

	var out strings.Builder
	out.WriteString(strings.Repeat(" ", yAxisWidth+3))
	for i := 0; i < len(c.Labels); i += step {
		if i > 0 {
			out.WriteString(strings.Repeat(" ", max(spacing-len(c.Labels[i-step]), 1)))
		}
		out.WriteString(SubtitleStyle.Render(c.Labels[i]))
	}
	return out.String()
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, series := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(series.Color).Render(string(seriesChar(i)))
		items = append(items, fmt.Sprintf("%s %s", symbol, series.Name))
	}
	return "Legend: " + strings.Join(items, " • ")
}

// formatChartValue formats a Y-axis value in reais
func formatChartValue(value float64) string {
	switch {
	case math.Abs(value) >= 1_000_000:
		return fmt.Sprintf("R$%.1fM", value/1_000_000)
	case math.Abs(value) >= 1000:
		return fmt.Sprintf("R$%.0fK", value/1000)
	}
	return fmt.Sprintf("R$%.0f", value)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ChartConsoleFormatter plots the dense monthly series.
type ChartConsoleFormatter struct{}

func (c ChartConsoleFormatter) Name() string { return "chart" }

func (c ChartConsoleFormatter) Format(report *domain.SimulationReport) ([]byte, error) {
	if report == nil || len(report.Chart) == 0 {
		return nil, fmt.Errorf("report has no chart series")
	}

	n := len(report.Chart)
	value := make([]float64, n)
	invested := make([]float64, n)
	net := make([]float64, n)
	selic := make([]float64, n)
	labels := make([]string, n)
	for i, p := range report.Chart {
		value[i] = p.PropertyValue.InexactFloat64()
		invested[i] = p.TotalInvested.InexactFloat64()
		net[i] = p.NetProfit.InexactFloat64()
		selic[i] = p.PolicyRateYield.InexactFloat64()
		labels[i] = fmt.Sprintf("m%d", p.Month)
	}

	title := "Projection by sale month"
	if report.Name != "" {
		title += ": " + report.Name
	}
	chart := NewASCIIChart(title).
		AddSeries("Property value", value, ColorChartLine1).
		AddSeries("Total invested", invested, ColorChartLine2).
		AddSeries("Net profit", net, ColorChartLine3).
		AddSeries("Selic yield", selic, ColorChartLine4).
		WithLabels(labels)
	chart.XAxisLabel = "Sale month"

	return []byte(chart.Render() + "\n"), nil
}
