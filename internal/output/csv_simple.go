package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/pharosnegocios/imobcalc/internal/domain"
)

// CSVSummarizer writes one row per tabular scenario.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.SimulationReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"month", "label", "phase", "property_value", "total_invested", "corrected_invested",
		"commission", "tax_due", "net_profit", "profitability_percent", "annualized_percent",
		"policy_rate_yield", "interbank_rate_yield", "tax_exempt_yield",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, s := range report.Scenarios {
		row := []string{
			intToString(s.Month),
			s.Label,
			string(s.Phase),
			s.PropertyValue.StringFixed(0),
			s.TotalInvested.StringFixed(0),
			s.CorrectedInvested.StringFixed(0),
			s.Commission.StringFixed(0),
			s.TaxDue.StringFixed(0),
			s.NetProfit.StringFixed(0),
			s.ProfitabilityPercent.StringFixed(2),
			s.AnnualizedPercent.StringFixed(2),
			s.PolicyRateYield.StringFixed(0),
			s.InterbankRateYield.StringFixed(0),
			s.TaxExemptYield.StringFixed(0),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// FormatValuation writes one row per comparable, inactive ones included.
func (c CSVSummarizer) FormatValuation(report *domain.ValuationReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"order", "code", "project", "total_price", "private_area", "price_per_area", "weight", "active", "provenance"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, comp := range report.Comparables {
		row := []string{
			intToString(comp.Order),
			comp.Code,
			comp.Project,
			comp.TotalPrice.StringFixed(0),
			comp.PrivateArea.String(),
			comp.PricePerArea().StringFixed(2),
			comp.Weight.String(),
			strconv.FormatBool(comp.Active),
			string(comp.Provenance),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ChartCSVFormatter writes the dense monthly series.
type ChartCSVFormatter struct{}

func (c ChartCSVFormatter) Name() string { return "chart-csv" }

func (c ChartCSVFormatter) Format(report *domain.SimulationReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"month", "property_value", "total_invested", "net_profit", "policy_rate_yield"}); err != nil {
		return nil, err
	}
	for _, p := range report.Chart {
		row := []string{
			intToString(p.Month),
			p.PropertyValue.StringFixed(0),
			p.TotalInvested.StringFixed(0),
			p.NetProfit.StringFixed(0),
			p.PolicyRateYield.StringFixed(0),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func intToString(i int) string { return strconv.Itoa(i) }
