package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/pharosnegocios/imobcalc/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (a *app) indicesCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "indices",
		Short: "Show current reference rates (Selic, IPCA 12m, CDI)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.rateProvider().Rates(cmd.Context())
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "text":
				data = []byte(formatRates(r))
			case "json":
				if data, err = json.MarshalIndent(r, "", "  "); err != nil {
					return err
				}
				data = append(data, '\n')
			case "yaml":
				if data, err = yaml.Marshal(r); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (valid: text, json, yaml)", format)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json, yaml)")
	return cmd
}

func formatRates(r domain.ReferenceRates) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Selic:      %s a.a.\n", output.FormatPercentage(r.PolicyRate))
	fmt.Fprintf(&sb, "IPCA (12m): %s\n", output.FormatPercentage(r.InflationRate))
	fmt.Fprintf(&sb, "CDI:        %s a.a.\n", output.FormatPercentage(r.InterbankRate))
	if r.UpdatedAt != nil {
		fmt.Fprintf(&sb, "Updated:    %s\n", r.UpdatedAt.Format("2006-01-02 15:04"))
	}
	if r.Fallback {
		fmt.Fprintf(&sb, "Defaults used for: %s\n", strings.Join(r.Failed, ", "))
	}
	return sb.String()
}
