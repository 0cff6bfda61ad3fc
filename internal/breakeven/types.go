package breakeven

import (
	"fmt"

	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Target is the plan parameter the solver varies.
type Target string

const (
	TargetAppreciation Target = "appreciation"
	TargetCommission   Target = "commission"
	TargetPolicyRate   Target = "policy_rate"
)

// Goal is the outcome the solver searches for.
type Goal string

const (
	GoalZeroProfit      Goal = "zero_profit"       // net profit of zero
	GoalMatchPolicyRate Goal = "match_policy_rate" // net profit equal to the net Selic yield
	GoalMatchTaxExempt  Goal = "match_tax_exempt"  // net profit equal to the tax-exempt yield
)

// Targets lists every supported target.
func Targets() []Target {
	return []Target{TargetAppreciation, TargetCommission, TargetPolicyRate}
}

// Goals lists every supported goal.
func Goals() []Goal {
	return []Goal{GoalZeroProfit, GoalMatchPolicyRate, GoalMatchTaxExempt}
}

// Applicable reports whether varying target can move the gap measured by
// goal. The policy rate only feeds the Selic benchmark.
func Applicable(target Target, goal Goal) bool {
	if target == TargetPolicyRate {
		return goal == GoalMatchPolicyRate
	}
	return true
}

// Constraints bound the search interval. Nil bounds use the target default.
type Constraints struct {
	Min *decimal.Decimal `json:"min,omitempty"`
	Max *decimal.Decimal `json:"max,omitempty"`
}

// DefaultBounds returns the search interval used when no constraint is set.
func DefaultBounds(target Target) (decimal.Decimal, decimal.Decimal) {
	switch target {
	case TargetAppreciation:
		return decimal.NewFromInt(-20), decimal.NewFromInt(40)
	case TargetCommission:
		return decimal.Zero, decimal.NewFromInt(100)
	default:
		return decimal.Zero, decimal.NewFromInt(50)
	}
}

// Bounds resolves the search interval for target.
func (c Constraints) Bounds(target Target) (decimal.Decimal, decimal.Decimal) {
	lo, hi := DefaultBounds(target)
	if c.Min != nil {
		lo = *c.Min
	}
	if c.Max != nil {
		hi = *c.Max
	}
	return lo, hi
}

// Request describes a single break-even search.
type Request struct {
	Plan          domain.InvestmentPlan
	Target        Target
	Goal          Goal
	Month         int // sale month; zero means key delivery
	Constraints   Constraints
	MaxIterations int
	Tolerance     decimal.Decimal // width of the final interval, in percentage points
}

// Validate checks the request before any evaluation.
func (r Request) Validate() error {
	switch r.Target {
	case TargetAppreciation, TargetCommission, TargetPolicyRate:
	default:
		return &BreakEvenError{Operation: "validate_request", Message: fmt.Sprintf("unsupported target: %s", r.Target)}
	}
	switch r.Goal {
	case GoalZeroProfit, GoalMatchPolicyRate, GoalMatchTaxExempt:
	default:
		return &BreakEvenError{Operation: "validate_request", Message: fmt.Sprintf("unsupported goal: %s", r.Goal)}
	}
	if !Applicable(r.Target, r.Goal) {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   fmt.Sprintf("target %s has no effect on goal %s", r.Target, r.Goal),
		}
	}
	if r.Month < 0 || r.Month > r.Plan.HorizonMonths() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   fmt.Sprintf("month must be between 1 and %d", r.Plan.HorizonMonths()),
		}
	}
	lo, hi := r.Constraints.Bounds(r.Target)
	if !lo.LessThan(hi) {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min must be below max"}
	}
	return nil
}

// Result is the outcome of a break-even search.
type Result struct {
	Target          Target                `json:"target"`
	Goal            Goal                  `json:"goal"`
	Month           int                   `json:"month"`
	Success         bool                  `json:"success"`
	Iterations      int                   `json:"iterations"`
	ConvergenceInfo string                `json:"convergenceInfo"`
	Value           decimal.Decimal       `json:"value"`
	BaseValue       decimal.Decimal       `json:"baseValue"`
	Scenario        domain.ScenarioResult `json:"scenario"`
	BaseScenario    domain.ScenarioResult `json:"baseScenario"`
	// BaseGap is how far the base plan is from the goal; positive means it
	// already beats it.
	BaseGap decimal.Decimal `json:"baseGap"`
}

// MultiResult holds every applicable search over one plan.
type MultiResult struct {
	Month           int      `json:"month"`
	Results         []Result `json:"results"`
	Recommendations []string `json:"recommendations"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	MaxIterations int
	Tolerance     decimal.Decimal
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations: 60,
		Tolerance:     decimal.NewFromFloat(0.01),
	}
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
