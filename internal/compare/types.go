package compare

import (
	"fmt"

	"github.com/pharosnegocios/imobcalc/internal/calculation"
	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one plan's headline metrics in a comparison
type ComparisonResult struct {
	PlanName string                   `json:"planName"`
	Report   *domain.SimulationReport `json:"-"`

	// Key Metrics
	TotalInvested    decimal.Decimal `json:"totalInvested"` // at the end of the horizon
	BestNetProfit    decimal.Decimal `json:"bestNetProfit"`
	BestMonth        int             `json:"bestMonth"`
	BestAnnualized   decimal.Decimal `json:"bestAnnualized"`
	BreakEvenMonth   int             `json:"breakEvenMonth"` // 0 when never
	AcquisitionCosts decimal.Decimal `json:"acquisitionCosts"`

	// Comparison to Base
	NetProfitDiffFromBase  decimal.Decimal `json:"netProfitDiffFromBase"`
	NetProfitPctFromBase   decimal.Decimal `json:"netProfitPctFromBase"`
	AnnualizedDiffFromBase decimal.Decimal `json:"annualizedDiffFromBase"`
}

// ComparisonSet is a base plan compared with alternatives
type ComparisonSet struct {
	BasePlanName       string             `json:"basePlanName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
}

// MetricsCalculator extracts key metrics from scenario series
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// Summarize condenses a tabular series into a SimulationSummary.
func (mc *MetricsCalculator) Summarize(plan domain.InvestmentPlan, scenarios []domain.ScenarioResult) domain.SimulationSummary {
	summary := domain.SimulationSummary{
		AcquisitionCosts: calculation.AcquisitionCosts(plan),
		BreakEvenMonth:   BreakEvenMonth(scenarios),
	}

	for i := range scenarios {
		s := &scenarios[i]
		if summary.BestByNetProfit == nil || s.NetProfit.GreaterThan(summary.BestByNetProfit.NetProfit) {
			summary.BestByNetProfit = s
		}
		if summary.BestByAnnualized == nil || s.AnnualizedPercent.GreaterThan(summary.BestByAnnualized.AnnualizedPercent) {
			summary.BestByAnnualized = s
		}
		if s.Phase == domain.PhaseDelivery {
			summary.AtDelivery = s
		}
	}

	summary.Recommendations = SummaryRecommendations(summary)
	return summary
}

// BreakEvenMonth is the first month whose net profit exceeds the net
// policy-rate yield on the same capital, or 0 when none does.
func BreakEvenMonth(scenarios []domain.ScenarioResult) int {
	for _, s := range scenarios {
		if s.BeatsPolicyRate() {
			return s.Month
		}
	}
	return 0
}

// CalculateMetrics computes the comparison metrics of a report
func (mc *MetricsCalculator) CalculateMetrics(report *domain.SimulationReport) ComparisonResult {
	result := ComparisonResult{
		PlanName:         report.Name,
		Report:           report,
		BreakEvenMonth:   report.Summary.BreakEvenMonth,
		AcquisitionCosts: report.Summary.AcquisitionCosts,
	}
	if best := report.Summary.BestByNetProfit; best != nil {
		result.BestNetProfit = best.NetProfit
		result.BestMonth = best.Month
	}
	if best := report.Summary.BestByAnnualized; best != nil {
		result.BestAnnualized = best.AnnualizedPercent
	}
	if n := len(report.Scenarios); n > 0 {
		result.TotalInvested = report.Scenarios[n-1].TotalInvested
	}
	return result
}

// CalculateComparison computes comparison metrics between a plan and a base
func (mc *MetricsCalculator) CalculateComparison(result, base ComparisonResult) ComparisonResult {
	result.NetProfitDiffFromBase = result.BestNetProfit.Sub(base.BestNetProfit)

	if !base.BestNetProfit.IsZero() {
		result.NetProfitPctFromBase = result.NetProfitDiffFromBase.
			Div(base.BestNetProfit.Abs()).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	result.AnnualizedDiffFromBase = result.BestAnnualized.Sub(base.BestAnnualized)
	return result
}

// SummaryRecommendations describes the headline findings of a summary
func SummaryRecommendations(summary domain.SimulationSummary) []string {
	recommendations := []string{}

	best := summary.BestByNetProfit
	if best == nil {
		return recommendations
	}

	if best.NetProfit.IsPositive() {
		recommendations = append(recommendations,
			fmt.Sprintf("Highest net profit: sell at %s (month %d) for R$ %s", best.Label, best.Month, best.NetProfit.StringFixed(0)))
	} else {
		recommendations = append(recommendations,
			"No evaluated sale month is profitable after commission and tax")
	}

	if annualized := summary.BestByAnnualized; annualized != nil && annualized.AnnualizedPercent.IsPositive() {
		recommendations = append(recommendations,
			fmt.Sprintf("Best annualized return: %s%% a.a. at %s", annualized.AnnualizedPercent.StringFixed(2), annualized.Label))
	}

	if summary.BreakEvenMonth > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("The property beats the policy rate from month %d", summary.BreakEvenMonth))
	} else {
		recommendations = append(recommendations,
			"Fixed income at the policy rate beats the property at every evaluated month")
	}

	if d := summary.AtDelivery; d != nil && d.TaxExemptYield.GreaterThan(d.NetProfit) {
		recommendations = append(recommendations,
			"At delivery the tax-exempt instrument yields more than selling")
	}

	return recommendations
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	bestProfit := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.BestNetProfit.GreaterThan(bestProfit.BestNetProfit) {
			bestProfit = alt
		}
	}
	if bestProfit != compSet.BaseResult {
		diff := bestProfit.BestNetProfit.Sub(compSet.BaseResult.BestNetProfit)
		recommendations = append(recommendations,
			"Best Net Profit: "+bestProfit.PlanName+" nets R$ "+diff.StringFixed(0)+" more than "+compSet.BasePlanName)
	}

	bestAnnualized := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.BestAnnualized.GreaterThan(bestAnnualized.BestAnnualized) {
			bestAnnualized = alt
		}
	}
	if bestAnnualized != compSet.BaseResult {
		diff := bestAnnualized.BestAnnualized.Sub(compSet.BaseResult.BestAnnualized)
		recommendations = append(recommendations,
			"Best Annualized Return: "+bestAnnualized.PlanName+" adds "+diff.StringFixed(2)+" p.p. a year")
	}

	earliest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.BreakEvenMonth > 0 && (earliest.BreakEvenMonth == 0 || alt.BreakEvenMonth < earliest.BreakEvenMonth) {
			earliest = alt
		}
	}
	if earliest != compSet.BaseResult {
		recommendations = append(recommendations,
			fmt.Sprintf("Earliest Break-Even: %s beats the policy rate from month %d", earliest.PlanName, earliest.BreakEvenMonth))
	}

	return recommendations
}
