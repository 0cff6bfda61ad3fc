package calculation

import (
	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates the investment simulation
type CalculationEngine struct {
	Evaluator *ScenarioEvaluator
	Series    *ScenarioSeriesGenerator
	Logger    Logger
	Debug     bool // Enable debug output for detailed calculations
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	evaluator := NewScenarioEvaluator()
	return &CalculationEngine{
		Evaluator: evaluator,
		Series:    NewScenarioSeriesGenerator(evaluator),
		Logger:    NopLogger{},
	}
}

// SetLogger installs a logger; nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// EvaluateMonth computes a single scenario.
func (ce *CalculationEngine) EvaluateMonth(plan domain.InvestmentPlan, month int) domain.ScenarioResult {
	result := ce.Evaluator.Evaluate(plan, month)
	if ce.Debug {
		ce.debugScenario(result)
	}
	return result
}

// RunScenarios computes the tabular series for plan.
func (ce *CalculationEngine) RunScenarios(plan domain.InvestmentPlan) []domain.ScenarioResult {
	scenarios := ce.Series.Tabular(plan)
	ce.Logger.Infof("computed %d scenarios over %d months (construction %d)",
		len(scenarios), plan.HorizonMonths(), plan.ConstructionTermMonths)
	if ce.Debug {
		for _, s := range scenarios {
			ce.debugScenario(s)
		}
	}
	return scenarios
}

// RunChart computes the dense monthly series for plan.
func (ce *CalculationEngine) RunChart(plan domain.InvestmentPlan) []domain.ChartPoint {
	points := ce.Series.Dense(plan)
	ce.Logger.Debugf("computed %d chart points", len(points))
	return points
}

// AcquisitionCosts returns the one-off purchase costs carried by the plan:
// transfer tax on the launch price plus registration. They are reported
// alongside the scenarios and do not enter profit.
func AcquisitionCosts(plan domain.InvestmentPlan) decimal.Decimal {
	transfer := plan.LaunchPrice.Mul(plan.TransferTaxPercent).Div(hundred)
	return roundMoney(transfer.Add(plan.RegistrationCost))
}

func (ce *CalculationEngine) debugScenario(s domain.ScenarioResult) {
	ce.Logger.Debugf("month=%d value=%s invested=%s corrected=%s tax=%s net=%s annualized=%s%%",
		s.Month,
		s.PropertyValue.StringFixed(0),
		s.TotalInvested.StringFixed(0),
		s.CorrectedInvested.StringFixed(0),
		s.TaxDue.StringFixed(0),
		s.NetProfit.StringFixed(0),
		s.AnnualizedPercent.StringFixed(2))
}
