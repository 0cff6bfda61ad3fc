package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing plans
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("INVESTMENT PLAN COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Plan: %s\n", compSet.BasePlanName))
	sb.WriteString("\n")

	nameWidth := 25
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Plan",
		numWidth, "Best Net",
		numWidth, "Best Month",
		numWidth, "Annualized",
		numWidth, "Break-Even"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.PlanName))
			sb.WriteString(fmt.Sprintf("  Net Profit:   %sR$ %s (%s%%)\n",
				tf.deltaSymbol(alt.NetProfitDiffFromBase),
				tf.formatDecimal(alt.NetProfitDiffFromBase.Abs()),
				alt.NetProfitPctFromBase.StringFixed(1)))
			if !alt.AnnualizedDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Annualized:   %s%s p.p.\n",
					tf.deltaSymbol(alt.AnnualizedDiffFromBase),
					alt.AnnualizedDiffFromBase.Abs().StringFixed(2)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.PlanName
	if isBase {
		name += " (base)"
	}

	breakEven := fmt.Sprintf("month %d", result.BreakEvenMonth)
	if result.BreakEvenMonth == 0 {
		breakEven = "never"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "R$ "+tf.formatDecimal(result.BestNetProfit),
		numWidth, fmt.Sprintf("%d", result.BestMonth),
		numWidth, result.BestAnnualized.StringFixed(2)+"%",
		numWidth, breakEven)
}

// formatDecimal abbreviates thousands and millions
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a single-line summary of the net profit deltas
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BasePlanName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.NetProfitDiffFromBase.IsPositive() {
			change = "+R$ " + tf.formatDecimal(alt.NetProfitDiffFromBase)
		} else if alt.NetProfitDiffFromBase.IsNegative() {
			change = "-R$ " + tf.formatDecimal(alt.NetProfitDiffFromBase.Abs())
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.PlanName, change))
	}

	return sb.String()
}
