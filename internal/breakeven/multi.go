package breakeven

import (
	"context"
	"fmt"

	"github.com/pharosnegocios/imobcalc/internal/domain"
)

// SolveAll runs every applicable target and goal pair for a sale at month
// (zero means key delivery). Pairs that error are skipped; unsuccessful
// searches are kept so callers can see which goals are out of reach.
func (s *Solver) SolveAll(ctx context.Context, plan domain.InvestmentPlan, month int, constraints map[Target]Constraints) (*MultiResult, error) {
	if month == 0 {
		month = plan.ConstructionTermMonths
	}

	multi := &MultiResult{Month: month}
	var firstErr error
	for _, target := range Targets() {
		for _, goal := range Goals() {
			if !Applicable(target, goal) {
				continue
			}
			result, err := s.Solve(ctx, Request{
				Plan:        plan,
				Target:      target,
				Goal:        goal,
				Month:       month,
				Constraints: constraints[target],
			})
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			multi.Results = append(multi.Results, *result)
		}
	}

	if len(multi.Results) == 0 {
		return nil, &BreakEvenError{
			Operation: "solve_all",
			Message:   "no break-even search could run",
			Cause:     firstErr,
		}
	}

	multi.Recommendations = Recommendations(multi.Results)
	return multi, nil
}

// Recommendations turns successful searches into sentences.
func Recommendations(results []Result) []string {
	var recs []string
	for _, r := range results {
		if !r.Success {
			if r.BaseGap.IsNegative() {
				recs = append(recs, fmt.Sprintf("No %s within range reaches %s", r.Target, goalLabel(r.Goal)))
			}
			continue
		}
		value := r.Value.StringFixed(2) + "%"
		switch r.Target {
		case TargetAppreciation:
			recs = append(recs, fmt.Sprintf("Appreciation must stay above %s a year to reach %s", value, goalLabel(r.Goal)))
		case TargetCommission:
			recs = append(recs, fmt.Sprintf("A sale commission up to %s still reaches %s", value, goalLabel(r.Goal)))
		case TargetPolicyRate:
			recs = append(recs, fmt.Sprintf("The property beats fixed income while Selic stays below %s a year", value))
		}
	}
	return recs
}

func goalLabel(goal Goal) string {
	switch goal {
	case GoalMatchPolicyRate:
		return "the Selic yield"
	case GoalMatchTaxExempt:
		return "the tax-exempt yield"
	default:
		return "zero profit"
	}
}
