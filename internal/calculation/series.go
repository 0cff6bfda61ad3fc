package calculation

import (
	"github.com/pharosnegocios/imobcalc/internal/domain"
)

// TabularStepMonths is the spacing between tabular scenarios.
const TabularStepMonths = 6

// ScenarioSeriesGenerator drives a ScenarioEvaluator across sale months.
// Series are recomputed from the plan on every call and never cached.
type ScenarioSeriesGenerator struct {
	Evaluator *ScenarioEvaluator
}

// NewScenarioSeriesGenerator creates a generator over evaluator
func NewScenarioSeriesGenerator(evaluator *ScenarioEvaluator) *ScenarioSeriesGenerator {
	if evaluator == nil {
		evaluator = NewScenarioEvaluator()
	}
	return &ScenarioSeriesGenerator{Evaluator: evaluator}
}

// Tabular evaluates every sixth month from month 6 through the horizon
// (construction term plus 24 months), in ascending order.
func (g *ScenarioSeriesGenerator) Tabular(plan domain.InvestmentPlan) []domain.ScenarioResult {
	horizon := plan.HorizonMonths()
	scenarios := make([]domain.ScenarioResult, 0, horizon/TabularStepMonths)
	for month := TabularStepMonths; month <= horizon; month += TabularStepMonths {
		scenarios = append(scenarios, g.Evaluator.Evaluate(plan, month))
	}
	return scenarios
}

// Dense evaluates every month from 1 through the horizon and keeps only the
// fields needed for charting.
func (g *ScenarioSeriesGenerator) Dense(plan domain.InvestmentPlan) []domain.ChartPoint {
	horizon := plan.HorizonMonths()
	points := make([]domain.ChartPoint, 0, max(horizon, 0))
	for month := 1; month <= horizon; month++ {
		s := g.Evaluator.Evaluate(plan, month)
		points = append(points, domain.ChartPoint{
			Month:           s.Month,
			PropertyValue:   s.PropertyValue,
			TotalInvested:   s.TotalInvested,
			NetProfit:       s.NetProfit,
			PolicyRateYield: s.PolicyRateYield,
		})
	}
	return points
}
