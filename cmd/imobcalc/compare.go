package main

import (
	"fmt"

	"github.com/pharosnegocios/imobcalc/internal/compare"
	"github.com/pharosnegocios/imobcalc/internal/config"
	"github.com/pharosnegocios/imobcalc/internal/transform"
	"github.com/spf13/cobra"
)

func (a *app) compareCmd() *cobra.Command {
	var (
		format        string
		liveRates     bool
		with          string
		transforms    []string
		listTemplates bool
	)
	cmd := &cobra.Command{
		Use:   "compare [base-file] [alternative-file...]",
		Short: "Compare alternative investment plans against a base plan",
		Long: `Simulates every plan and reports, for each alternative, how its best net
profit, best annualized return and break-even month differ from the base.

Alternatives can also be derived from the base plan with built-in templates
(--with) or ad hoc transforms (--transform name:key=value,...).

Examples:
  imobcalc compare tower-a.yaml tower-b.yaml tower-c.yaml
  imobcalc compare tower-a.yaml tower-b.yaml --format csv
  imobcalc compare tower-a.yaml --with pessimistic,delay_12m,worst_case
  imobcalc compare tower-a.yaml --transform delay_delivery:months=9
  imobcalc compare --list-templates`,
		RunE: func(cmd *cobra.Command, args []string) error {
			templates := transform.CreateBuiltInTemplates()
			if listTemplates {
				_, err := fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(templates))
				return err
			}
			if len(args) == 0 {
				return fmt.Errorf("compare needs a base plan file")
			}

			parser := config.NewInputParser()
			plans := make([]compare.NamedPlan, 0, len(args))
			for _, file := range args {
				input, err := parser.LoadSimulation(file)
				if err != nil {
					return err
				}
				plan, _ := a.applyRates(cmd.Context(), input.Plan, liveRates)
				plans = append(plans, compare.NamedPlan{Name: planName(input.Name, file), Plan: plan})
			}

			derived, err := compare.DeriveAlternatives(plans[0], templates, transform.ParseTemplateList(with), transforms)
			if err != nil {
				return err
			}
			plans = append(plans, derived...)
			if len(plans) < 2 {
				return fmt.Errorf("compare needs at least one alternative file, --with template or --transform")
			}

			compSet, err := a.newCompareEngine().ComparePlans(plans[0], plans[1:])
			if err != nil {
				return err
			}

			var out string
			switch format {
			case "table":
				out = (&compare.TableFormatter{}).Format(compSet)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(compSet)
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(compSet)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			default:
				return fmt.Errorf("unknown format %q (valid: table, compact, csv, json)", format)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().BoolVar(&liveRates, "live-rates", false, "Replace every plan's rates with current Central Bank rates")
	cmd.Flags().StringVar(&with, "with", "", "Comma-separated templates applied to the base plan as alternatives")
	cmd.Flags().StringArrayVar(&transforms, "transform", nil, "Transform applied to the base plan as an alternative (repeatable)")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List the built-in templates and exit")
	return cmd
}
