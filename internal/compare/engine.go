package compare

import (
	"fmt"

	"github.com/pharosnegocios/imobcalc/internal/calculation"
	"github.com/pharosnegocios/imobcalc/internal/domain"
)

// CompareEngine turns plans into reports and compares them
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// ReportOptions configures report generation
type ReportOptions struct {
	IncludeChart bool                   // Include the dense monthly series
	Rates        *domain.ReferenceRates // Rates applied to the plan, for display
}

// NamedPlan is a plan with the name it is reported under
type NamedPlan struct {
	Name string
	Plan domain.InvestmentPlan
}

// Simulate evaluates plan and condenses the result into a report.
func (ce *CompareEngine) Simulate(name string, plan domain.InvestmentPlan, options ReportOptions) *domain.SimulationReport {
	scenarios := ce.CalcEngine.RunScenarios(plan)

	report := &domain.SimulationReport{
		Name:      name,
		Plan:      plan,
		Rates:     options.Rates,
		Scenarios: scenarios,
		Summary:   ce.MetricsCalculator.Summarize(plan, scenarios),
	}
	if options.IncludeChart {
		report.Chart = ce.CalcEngine.RunChart(plan)
	}
	return report
}

// ComparePlans simulates a base plan and alternatives and compares each
// alternative against the base.
func (ce *CompareEngine) ComparePlans(base NamedPlan, alternatives []NamedPlan) (*ComparisonSet, error) {
	seen := map[string]bool{base.Name: true}
	for _, alt := range alternatives {
		if seen[alt.Name] {
			return nil, fmt.Errorf("duplicate plan name %q", alt.Name)
		}
		seen[alt.Name] = true
	}

	baseReport := ce.Simulate(base.Name, base.Plan, ReportOptions{})
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseReport)

	results := make([]ComparisonResult, 0, len(alternatives))
	for _, alt := range alternatives {
		report := ce.Simulate(alt.Name, alt.Plan, ReportOptions{})
		result := ce.MetricsCalculator.CalculateMetrics(report)
		results = append(results, ce.MetricsCalculator.CalculateComparison(result, baseResult))
	}

	compSet := &ComparisonSet{
		BasePlanName:       base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
