package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pharosnegocios/imobcalc/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format renders a single search
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Target:      %s\n", result.Target))
	sb.WriteString(fmt.Sprintf("Goal:        %s\n", goalLabel(result.Goal)))
	sb.WriteString(fmt.Sprintf("Sale month:  %d\n", result.Month))
	sb.WriteString(fmt.Sprintf("Status:      %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:  %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence: %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("BREAK-EVEN POINT\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Current %-14s %s\n", string(result.Target)+":", output.FormatPercentage(result.BaseValue)))
	if result.Success {
		sb.WriteString(fmt.Sprintf("Break-even %-11s %s\n", string(result.Target)+":", output.FormatPercentage(result.Value)))
		margin := result.BaseValue.Sub(result.Value)
		sb.WriteString(fmt.Sprintf("Margin:                %s%s p.p.\n", tf.deltaSymbol(margin), margin.StringFixed(2)))
	} else {
		sb.WriteString("Break-even:            not found in range\n")
	}
	sb.WriteString("\n")

	sb.WriteString("SALE AT BREAK-EVEN vs CURRENT PLAN\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-20s %18s %18s\n", "", "Break-even", "Current"))
	tf.writeRow(&sb, "Property value", result.Scenario.PropertyValue, result.BaseScenario.PropertyValue, result.Success)
	tf.writeRow(&sb, "Net profit", result.Scenario.NetProfit, result.BaseScenario.NetProfit, result.Success)
	tf.writeRow(&sb, "Selic (net)", result.Scenario.PolicyRateYield, result.BaseScenario.PolicyRateYield, result.Success)
	tf.writeRow(&sb, "Tax-exempt", result.Scenario.TaxExemptYield, result.BaseScenario.TaxExemptYield, result.Success)
	sb.WriteString("\n")

	return sb.String()
}

// FormatMulti renders every search of a SolveAll run
func (tf *TableFormatter) FormatMulti(multi *MultiResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Sale month: %d\n\n", multi.Month))

	sb.WriteString(fmt.Sprintf("%-14s %-22s %10s %12s %14s\n", "Target", "Goal", "Current", "Break-even", "Base gap"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, r := range multi.Results {
		value := "n/a"
		if r.Success {
			value = output.FormatPercentage(r.Value)
		}
		sb.WriteString(fmt.Sprintf("%-14s %-22s %10s %12s %14s\n",
			r.Target,
			r.Goal,
			output.FormatPercentage(r.BaseValue),
			value,
			output.FormatCompact(r.BaseGap)))
	}
	sb.WriteString("\n")

	if len(multi.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range multi.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) writeRow(sb *strings.Builder, label string, at, base decimal.Decimal, found bool) {
	atStr := "-"
	if found {
		atStr = output.FormatCurrency(at)
	}
	sb.WriteString(fmt.Sprintf("%-20s %18s %18s\n", label, atStr, output.FormatCurrency(base)))
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Not found"
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for a single search
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	return jf.marshal(result)
}

// FormatMulti generates JSON output for a SolveAll run
func (jf *JSONFormatter) FormatMulti(multi *MultiResult) (string, error) {
	return jf.marshal(multi)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
