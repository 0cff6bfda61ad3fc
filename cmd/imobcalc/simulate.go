package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pharosnegocios/imobcalc/internal/compare"
	"github.com/pharosnegocios/imobcalc/internal/config"
	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/pharosnegocios/imobcalc/internal/output"
	"github.com/spf13/cobra"
)

var formatExtensions = map[string]string{
	"console":      "txt",
	"console-lite": "txt",
	"chart":        "txt",
	"csv":          "csv",
	"chart-csv":    "csv",
	"json":         "json",
	"yaml":         "yaml",
}

func (a *app) simulateCmd() *cobra.Command {
	var (
		format    string
		liveRates bool
		save      bool
	)
	cmd := &cobra.Command{
		Use:   "simulate [input-file]",
		Short: "Simulate selling the unit every six months up to two years after delivery",
		Long: `Evaluates the sale of the unit every six months through two years after key
delivery and compares each outcome with fixed income at the policy,
interbank and tax-exempt rates.

Examples:
  imobcalc simulate plan.yaml
  imobcalc simulate plan.yaml --format csv
  imobcalc simulate plan.yaml --live-rates --format json --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSimulation(cmd, args[0], format, liveRates, save)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", formatHelp())
	cmd.Flags().BoolVar(&liveRates, "live-rates", false, "Replace the plan's rates with current Central Bank rates")
	cmd.Flags().BoolVar(&save, "save", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func (a *app) chartCmd() *cobra.Command {
	var (
		format    string
		liveRates bool
	)
	cmd := &cobra.Command{
		Use:   "chart [input-file]",
		Short: "Project the investment month by month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch f := output.GetFormatterByName(format); {
			case f == nil:
				return fmt.Errorf("unknown format %q (valid: chart, chart-csv, json, yaml)", format)
			case f.Name() != "chart" && f.Name() != "chart-csv" && f.Name() != "json" && f.Name() != "yaml":
				return fmt.Errorf("format %q does not render charts (valid: chart, chart-csv, json, yaml)", format)
			}
			return a.runSimulation(cmd, args[0], format, liveRates, false)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "chart", "Output format (chart, chart-csv, json, yaml)")
	cmd.Flags().BoolVar(&liveRates, "live-rates", false, "Replace the plan's rates with current Central Bank rates")
	return cmd
}

func (a *app) runSimulation(cmd *cobra.Command, inputFile, format string, liveRates, save bool) error {
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unknown format %q (%s)", format, formatHelp())
	}

	input, err := config.NewInputParser().LoadSimulation(inputFile)
	if err != nil {
		return err
	}

	plan, applied := a.applyRates(cmd.Context(), input.Plan, liveRates)
	options := compare.ReportOptions{
		Rates:        applied,
		IncludeChart: cmd.Name() == "chart" || f.Name() == "chart" || f.Name() == "chart-csv",
	}
	report := a.newCompareEngine().Simulate(planName(input.Name, inputFile), plan, options)

	if save {
		filename, err := output.WriteFormatted(f, report, formatExtensions[f.Name()])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
		return nil
	}

	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// applyRates overwrites the plan's rates with current ones when live is set.
func (a *app) applyRates(ctx context.Context, plan domain.InvestmentPlan, live bool) (domain.InvestmentPlan, *domain.ReferenceRates) {
	if !live {
		return plan, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	r, err := a.rateProvider().Rates(ctx)
	if err != nil {
		a.logger.WithError(err).Warn("Keeping plan rates")
		return plan, nil
	}
	if r.Fallback {
		a.logger.WithField("failed", strings.Join(r.Failed, ",")).Warn("Some reference rates fell back to defaults")
	}
	return r.ApplyTo(plan), &r
}

func formatHelp() string {
	return fmt.Sprintf("Output format: %s (aliases: %s)",
		strings.Join(output.AvailableFormatterNames(), ", "),
		strings.Join(output.AvailableFormatAliases(), ", "))
}
