package breakeven

import (
	"context"
	"fmt"

	"github.com/pharosnegocios/imobcalc/internal/calculation"
	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/pharosnegocios/imobcalc/internal/transform"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver finds the value of a plan parameter at which a sale breaks even.
type Solver struct {
	Evaluator *calculation.ScenarioEvaluator
	Options   SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(evaluator *calculation.ScenarioEvaluator, options SolverOptions) *Solver {
	if evaluator == nil {
		evaluator = calculation.NewScenarioEvaluator()
	}
	return &Solver{
		Evaluator: evaluator,
		Options:   options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver() *Solver {
	return NewSolver(nil, DefaultSolverOptions())
}

// Solve bisects the target's interval for the point where the goal's gap
// changes sign. When the gap has the same sign at both bounds the result is
// returned with Success false.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if !req.Tolerance.IsPositive() {
		req.Tolerance = s.Options.Tolerance
	}
	if req.Month == 0 {
		req.Month = req.Plan.ConstructionTermMonths
	}

	base := s.Evaluator.Evaluate(req.Plan, req.Month)
	result := &Result{
		Target:       req.Target,
		Goal:         req.Goal,
		Month:        req.Month,
		BaseValue:    currentValue(req.Plan, req.Target),
		BaseScenario: base,
		BaseGap:      Gap(base, req.Goal),
	}

	lo, hi := req.Constraints.Bounds(req.Target)
	gapLo, scenario, err := s.gapAt(req, lo)
	if err != nil {
		return nil, err
	}
	if gapLo.IsZero() {
		return s.finish(result, lo, scenario, 0, "Lower bound is the break-even point"), nil
	}
	gapHi, scenario, err := s.gapAt(req, hi)
	if err != nil {
		return nil, err
	}
	if gapHi.IsZero() {
		return s.finish(result, hi, scenario, 0, "Upper bound is the break-even point"), nil
	}
	if gapLo.Sign() == gapHi.Sign() {
		result.ConvergenceInfo = fmt.Sprintf("No break-even between %s and %s", lo.String(), hi.String())
		return result, nil
	}

	iterations := 0
	for iterations < req.MaxIterations {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two)
		gapMid, midScenario, err := s.gapAt(req, mid)
		if err != nil {
			return nil, err
		}
		scenario = midScenario

		if gapMid.IsZero() || hi.Sub(lo).LessThan(req.Tolerance) {
			return s.finish(result, mid, scenario, iterations, "Bisection converged"), nil
		}
		if gapMid.Sign() == gapLo.Sign() {
			lo, gapLo = mid, gapMid
		} else {
			hi = mid
		}
	}

	mid := lo.Add(hi).Div(two)
	_, scenario, err = s.gapAt(req, mid)
	if err != nil {
		return nil, err
	}
	s.finish(result, mid, scenario, iterations, "")
	result.Success = false
	result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	return result, nil
}

func (s *Solver) finish(result *Result, value decimal.Decimal, scenario domain.ScenarioResult, iterations int, info string) *Result {
	result.Success = true
	result.Value = value.Round(2)
	result.Scenario = scenario
	result.Iterations = iterations
	result.ConvergenceInfo = info
	return result
}

func (s *Solver) gapAt(req Request, value decimal.Decimal) (decimal.Decimal, domain.ScenarioResult, error) {
	plan, err := transform.ApplyTransforms(req.Plan, []transform.PlanTransform{setter(req.Target, value)})
	if err != nil {
		return decimal.Zero, domain.ScenarioResult{}, &BreakEvenError{
			Operation: "solve_" + string(req.Target),
			Message:   fmt.Sprintf("failed to apply %s %s", req.Target, value.String()),
			Cause:     err,
		}
	}
	scenario := s.Evaluator.Evaluate(plan, req.Month)
	return Gap(scenario, req.Goal), scenario, nil
}

// Gap returns the scenario's distance from goal: net profit minus the
// benchmark the goal compares against.
func Gap(s domain.ScenarioResult, goal Goal) decimal.Decimal {
	switch goal {
	case GoalMatchPolicyRate:
		return s.NetProfit.Sub(s.PolicyRateYield)
	case GoalMatchTaxExempt:
		return s.NetProfit.Sub(s.TaxExemptYield)
	default:
		return s.NetProfit
	}
}

func setter(target Target, value decimal.Decimal) transform.PlanTransform {
	switch target {
	case TargetCommission:
		return &transform.SetCommission{Percent: value}
	case TargetPolicyRate:
		return &transform.SetPolicyRate{Rate: value}
	default:
		return &transform.SetAppreciation{Rate: value}
	}
}

func currentValue(plan domain.InvestmentPlan, target Target) decimal.Decimal {
	switch target {
	case TargetCommission:
		return plan.SaleCommissionPercent
	case TargetPolicyRate:
		return plan.PolicyRate
	default:
		return plan.AnnualAppreciationRate
	}
}
