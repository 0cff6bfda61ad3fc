package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pharosnegocios/imobcalc/internal/config"
	"github.com/pharosnegocios/imobcalc/internal/output"
	"github.com/pharosnegocios/imobcalc/internal/record"
	"github.com/pharosnegocios/imobcalc/internal/valuation"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func (a *app) valuateCmd() *cobra.Command {
	var (
		format string
		policy string
	)
	cmd := &cobra.Command{
		Use:   "valuate [input-file]",
		Short: "Value a property from weighted market comparables",
		Long: `Computes the weighted price per square meter of the active comparables and
derives the appraised, commercial and maximum values of the subject.

The weight policy is taken from --weight-policy, then from the document's
weight_policy, then from IMOBCALC_WEIGHT_POLICY.

Examples:
  imobcalc valuate valuation.yaml
  imobcalc valuate valuation.yaml --weight-policy strict --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.GetValuationFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unknown valuation format %q (valid: console, csv, json, yaml)", format)
			}

			input, err := config.NewInputParser().LoadValuation(args[0])
			if err != nil {
				return err
			}

			resolved := input.Policy(a.cfg.Policy())
			if policy != "" {
				if resolved, err = valuation.ParseWeightPolicy(policy); err != nil {
					return err
				}
			}

			report, err := valuation.NewComparableWeightingEngine(resolved).Report(input.Comparables, input.Subject)
			if err != nil {
				return err
			}
			a.logger.WithFields(logrus.Fields{
				"policy": report.Policy,
				"active": report.Result.ActiveCount,
			}).Debug("Valuation computed")

			data, err := f.FormatValuation(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, csv, json, yaml)")
	cmd.Flags().StringVar(&policy, "weight-policy", "", "Weight policy: permissive, clamp or strict")
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate an input document",
		Long: `Validates a document without running any calculation. Kinds:
  simulation   YAML/JSON simulation document (plan)
  valuation    YAML/JSON valuation document (subject and comparables)
  record       persisted simulation record (snake_case JSON)
  comparables  comparable search result (JSON array or wrapped object)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]
			parser := config.NewInputParser()

			var err error
			switch kind {
			case "simulation":
				_, err = parser.LoadSimulation(inputFile)
			case "valuation":
				_, err = parser.LoadValuation(inputFile)
			case "record":
				err = validateRecord(inputFile)
			case "comparables":
				err = validateComparables(inputFile)
			default:
				return fmt.Errorf("unknown document kind %q (valid: simulation, valuation, record, comparables)", kind)
			}
			if err != nil {
				printProblems(cmd, err)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s file %s is valid\n", kind, inputFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "simulation", "Document kind: simulation, valuation, record, comparables")
	return cmd
}

func validateRecord(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	sim, err := record.ParseSimulation(data)
	if err != nil {
		return err
	}
	plan, err := sim.Plan()
	if err != nil {
		return err
	}
	_, err = config.NewInputParser().NormalizePlan(plan)
	return err
}

func validateComparables(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	_, err = record.ParseComparables(data)
	return err
}

// printProblems lists each offending field of a validation error on stdout.
func printProblems(cmd *cobra.Command, err error) {
	out := cmd.OutOrStdout()
	var fe *record.FieldError
	if errors.As(err, &fe) {
		for _, issue := range fe.Issues {
			fmt.Fprintf(out, "  - %s: %s\n", issue.Field, issue.Reason)
		}
		return
	}
	var ve *config.ValidationError
	if errors.As(err, &ve) {
		for _, p := range ve.Problems {
			fmt.Fprintf(out, "  - %s\n", p)
		}
	}
}
