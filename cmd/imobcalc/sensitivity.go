package main

import (
	"fmt"
	"strings"

	"github.com/pharosnegocios/imobcalc/internal/calculation"
	"github.com/pharosnegocios/imobcalc/internal/config"
	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/pharosnegocios/imobcalc/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (a *app) sensitivityCmd() *cobra.Command {
	var (
		param     string
		minValue  string
		maxValue  string
		steps     int
		month     int
		format    string
		liveRates bool
	)
	cmd := &cobra.Command{
		Use:   "sensitivity [input-file]",
		Short: "Sweep one plan parameter and re-evaluate a sale month",
		Long: `Re-evaluates the sale at one month while a single plan parameter moves
across a range, to show how robust the outcome is.

Parameters: ` + parameterNames() + `

Examples:
  imobcalc sensitivity plan.yaml
  imobcalc sensitivity plan.yaml --param appreciation --min 0 --max 10 --steps 5 --month 36
  imobcalc sensitivity plan.yaml --param policy_rate --format csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.GetSensitivityFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unknown sensitivity format %q (valid: console, csv, json, yaml)", format)
			}

			parameter, err := calculation.LookupParameter(param)
			if err != nil {
				return fmt.Errorf("%w (valid: %s)", err, parameterNames())
			}
			if minValue != "" {
				if parameter.MinValue, err = decimal.NewFromString(minValue); err != nil {
					return fmt.Errorf("invalid --min %q: %w", minValue, err)
				}
			}
			if maxValue != "" {
				if parameter.MaxValue, err = decimal.NewFromString(maxValue); err != nil {
					return fmt.Errorf("invalid --max %q: %w", maxValue, err)
				}
			}
			if steps > 0 {
				parameter.Steps = steps
			}

			input, err := config.NewInputParser().LoadSimulation(args[0])
			if err != nil {
				return err
			}
			plan, _ := a.applyRates(cmd.Context(), input.Plan, liveRates)
			if month < 0 {
				month = plan.ConstructionTermMonths
			}

			analyzer := calculation.NewSensitivityAnalyzer()
			analysis, err := analyzer.Analyze(plan, parameter, month)
			if err != nil {
				return err
			}

			data, err := f.FormatSensitivityAnalysis(analysis)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&param, "param", "p", domain.ParamAppreciation, "Parameter to sweep")
	cmd.Flags().StringVar(&minValue, "min", "", "Lowest value of the sweep (default: parameter default)")
	cmd.Flags().StringVar(&maxValue, "max", "", "Highest value of the sweep (default: parameter default)")
	cmd.Flags().IntVar(&steps, "steps", 0, "Number of values in the sweep (default: parameter default)")
	cmd.Flags().IntVar(&month, "month", -1, "Sale month to evaluate (default: delivery)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, csv, json, yaml)")
	cmd.Flags().BoolVar(&liveRates, "live-rates", false, "Replace the plan's rates with current Central Bank rates")
	return cmd
}

func parameterNames() string {
	params := domain.GetCommonParameters()
	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, p.Name)
	}
	return strings.Join(names, ", ")
}
