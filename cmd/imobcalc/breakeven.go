package main

import (
	"fmt"

	"github.com/pharosnegocios/imobcalc/internal/breakeven"
	"github.com/pharosnegocios/imobcalc/internal/config"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (a *app) breakevenCmd() *cobra.Command {
	var (
		target    string
		goal      string
		month     int
		minValue  string
		maxValue  string
		all       bool
		format    string
		liveRates bool
	)
	cmd := &cobra.Command{
		Use:   "breakeven [input-file]",
		Short: "Find the parameter value at which a sale breaks even",
		Long: `Bisects one plan parameter for the value at which the sale at a given month
stops being worth it: zero net profit, or a net profit equal to the Selic or
tax-exempt alternative.

Targets: appreciation, commission, policy_rate
Goals:   zero_profit, match_policy_rate, match_tax_exempt

Examples:
  imobcalc breakeven plan.yaml
  imobcalc breakeven plan.yaml --target commission --goal match_tax_exempt
  imobcalc breakeven plan.yaml --target policy_rate --goal match_policy_rate --month 48
  imobcalc breakeven plan.yaml --all --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("unknown format %q (valid: table, json)", format)
			}

			input, err := config.NewInputParser().LoadSimulation(args[0])
			if err != nil {
				return err
			}
			plan, _ := a.applyRates(cmd.Context(), input.Plan, liveRates)

			var constraints breakeven.Constraints
			if constraints.Min, err = optionalDecimal("--min", minValue); err != nil {
				return err
			}
			if constraints.Max, err = optionalDecimal("--max", maxValue); err != nil {
				return err
			}

			solver := breakeven.NewDefaultSolver()
			var out string
			if all {
				multi, err := solver.SolveAll(cmd.Context(), plan, month, nil)
				if err != nil {
					return err
				}
				if format == "json" {
					out, err = (&breakeven.JSONFormatter{Pretty: true}).FormatMulti(multi)
					if err != nil {
						return err
					}
				} else {
					out = (&breakeven.TableFormatter{}).FormatMulti(multi)
				}
			} else {
				result, err := solver.Solve(cmd.Context(), breakeven.Request{
					Plan:        plan,
					Target:      breakeven.Target(target),
					Goal:        breakeven.Goal(goal),
					Month:       month,
					Constraints: constraints,
				})
				if err != nil {
					return err
				}
				a.logger.WithField("success", result.Success).Debugf("break-even search took %d iterations", result.Iterations)
				if format == "json" {
					out, err = (&breakeven.JSONFormatter{Pretty: true}).Format(result)
					if err != nil {
						return err
					}
				} else {
					out = (&breakeven.TableFormatter{}).Format(result)
				}
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVarP(&target, "target", "t", string(breakeven.TargetAppreciation), "Parameter to solve for")
	cmd.Flags().StringVarP(&goal, "goal", "g", string(breakeven.GoalZeroProfit), "Outcome to break even against")
	cmd.Flags().IntVar(&month, "month", 0, "Sale month (0 means key delivery)")
	cmd.Flags().StringVar(&minValue, "min", "", "Lower search bound (percent)")
	cmd.Flags().StringVar(&maxValue, "max", "", "Upper search bound (percent)")
	cmd.Flags().BoolVar(&all, "all", false, "Solve every target and goal pair")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	cmd.Flags().BoolVar(&liveRates, "live-rates", false, "Replace the plan's rates with current Central Bank rates")
	return cmd
}

func optionalDecimal(flag, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", flag, raw, err)
	}
	return &d, nil
}
