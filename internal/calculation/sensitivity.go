package calculation

import (
	"errors"
	"fmt"

	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrUnknownParameter is returned when a sweep names a parameter the
// analyzer cannot modify.
var ErrUnknownParameter = errors.New("unknown sensitivity parameter")

// SensitivityAnalyzer performs parameter sweep analysis
type SensitivityAnalyzer struct {
	Evaluator *ScenarioEvaluator
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer() *SensitivityAnalyzer {
	return &SensitivityAnalyzer{Evaluator: NewScenarioEvaluator()}
}

// LookupParameter returns the default sweep for name.
func LookupParameter(name string) (domain.SensitivityParameter, error) {
	for _, p := range domain.GetCommonParameters() {
		if p.Name == name {
			return p, nil
		}
	}
	return domain.SensitivityParameter{}, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
}

// Analyze sweeps parameter across its range and evaluates the sale at month
// for every value. The plan itself is never modified.
func (sa *SensitivityAnalyzer) Analyze(plan domain.InvestmentPlan, parameter domain.SensitivityParameter, month int) (*domain.SensitivityAnalysis, error) {
	baseValue, err := parameterValue(plan, parameter.Name)
	if err != nil {
		return nil, err
	}
	if parameter.Steps < 1 {
		return nil, fmt.Errorf("steps must be at least 1, got %d", parameter.Steps)
	}
	if parameter.MaxValue.LessThan(parameter.MinValue) {
		return nil, fmt.Errorf("max value %s is below min value %s", parameter.MaxValue, parameter.MinValue)
	}
	if month < 0 {
		return nil, fmt.Errorf("month must be non-negative, got %d", month)
	}

	base := sa.Evaluator.Evaluate(plan, month)
	values := generateParameterValues(parameter)
	points := make([]domain.SensitivityPoint, 0, len(values))

	for _, value := range values {
		modified, err := withParameter(plan, parameter.Name, value)
		if err != nil {
			return nil, err
		}
		s := sa.Evaluator.Evaluate(modified, month)
		points = append(points, domain.SensitivityPoint{
			Value:             value,
			NetProfit:         s.NetProfit,
			AnnualizedPercent: s.AnnualizedPercent,
			NetProfitDelta:    s.NetProfit.Sub(base.NetProfit),
			BeatsPolicyRate:   s.BeatsPolicyRate(),
		})
	}

	return &domain.SensitivityAnalysis{
		Parameter: parameter,
		Month:     month,
		BaseValue: baseValue,
		Base:      base,
		Points:    points,
		RiskLevel: riskLevel(points, base.TotalInvested),
	}, nil
}

// generateParameterValues generates values for a parameter sweep
func generateParameterValues(param domain.SensitivityParameter) []decimal.Decimal {
	if param.Steps == 1 {
		return []decimal.Decimal{param.MinValue}
	}

	values := make([]decimal.Decimal, 0, param.Steps)
	stepSize := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))
	for i := 0; i < param.Steps; i++ {
		values = append(values, param.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i)))))
	}
	return values
}

func parameterValue(plan domain.InvestmentPlan, name string) (decimal.Decimal, error) {
	switch name {
	case domain.ParamAppreciation:
		return plan.AnnualAppreciationRate, nil
	case domain.ParamCorrectionRate:
		return plan.AnnualCorrectionRate, nil
	case domain.ParamCommission:
		return plan.SaleCommissionPercent, nil
	case domain.ParamPolicyRate:
		return plan.PolicyRate, nil
	}
	return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
}

// withParameter returns a copy of plan with one parameter replaced.
func withParameter(plan domain.InvestmentPlan, name string, value decimal.Decimal) (domain.InvestmentPlan, error) {
	switch name {
	case domain.ParamAppreciation:
		plan.AnnualAppreciationRate = value
	case domain.ParamCorrectionRate:
		plan.AnnualCorrectionRate = value
	case domain.ParamCommission:
		plan.SaleCommissionPercent = value
	case domain.ParamPolicyRate:
		plan.PolicyRate = value
	default:
		return plan, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	return plan, nil
}

// riskLevel grades the spread of net profit across the sweep relative to the
// amount invested: under 10% LOW, under 30% MEDIUM, otherwise HIGH.
func riskLevel(points []domain.SensitivityPoint, invested decimal.Decimal) string {
	if len(points) == 0 || !invested.IsPositive() {
		return "LOW"
	}
	lo, hi := points[0].NetProfit, points[0].NetProfit
	for _, p := range points[1:] {
		lo = decimal.Min(lo, p.NetProfit)
		hi = decimal.Max(hi, p.NetProfit)
	}
	spread := hi.Sub(lo).Div(invested).Mul(hundred)
	switch {
	case spread.LessThan(decimal.NewFromInt(10)):
		return "LOW"
	case spread.LessThan(decimal.NewFromInt(30)):
		return "MEDIUM"
	default:
		return "HIGH"
	}
}
