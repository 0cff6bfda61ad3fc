package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Plan",
		"Type",
		"Best Net Profit",
		"Best Month",
		"Best Annualized %",
		"Break-Even Month",
		"Total Invested",
		"Acquisition Costs",
		"Net Profit Diff from Base",
		"Net Profit % Change",
		"Annualized Diff (p.p.)",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, planType string) []string {
	return []string{
		result.PlanName,
		planType,
		result.BestNetProfit.StringFixed(0),
		strconv.Itoa(result.BestMonth),
		result.BestAnnualized.StringFixed(2),
		strconv.Itoa(result.BreakEvenMonth),
		result.TotalInvested.StringFixed(0),
		result.AcquisitionCosts.StringFixed(0),
		result.NetProfitDiffFromBase.StringFixed(0),
		result.NetProfitPctFromBase.StringFixed(2),
		result.AnnualizedDiffFromBase.StringFixed(2),
	}
}
