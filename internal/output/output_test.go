package output

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/pharosnegocios/imobcalc/internal/calculation"
	"github.com/pharosnegocios/imobcalc/internal/compare"
	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/pharosnegocios/imobcalc/internal/valuation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testPlan() domain.InvestmentPlan {
	return domain.InvestmentPlan{
		LaunchPrice:             dec("500000"),
		EntryPayment:            dec("50000"),
		MonthlyInstallments:     36,
		MonthlyInstallmentValue: dec("1500"),
		KeyDeliveryBalance:      dec("396000"),
		ConstructionTermMonths:  36,
		CorrectionIndex:         domain.CorrectionINCC,
		AnnualCorrectionRate:    dec("5"),
		TransferTaxPercent:      dec("2"),
		RegistrationCost:        dec("3000"),
		SaleCommissionPercent:   dec("6"),
		AnnualAppreciationRate:  dec("7"),
		PolicyRate:              dec("13.25"),
		InterbankRate:           dec("13.15"),
		TaxExemptRate:           dec("12"),
	}
}

func testReport(t *testing.T, withChart bool) *domain.SimulationReport {
	t.Helper()
	rates := domain.DefaultReferenceRates()
	rates.Failed = []string{"selic"}
	return compare.NewCompareEngine(nil).Simulate("Tower A", testPlan(), compare.ReportOptions{
		IncludeChart: withChart,
		Rates:        &rates,
	})
}

func testValuation(t *testing.T) *domain.ValuationReport {
	t.Helper()
	comparables := []domain.Comparable{
		{Code: "COMP-001", Project: "Residencial Mar", TotalPrice: dec("600000"), PrivateArea: dec("60"), Weight: dec("1"), Active: true, Provenance: domain.ProvenanceManual, Order: 1},
		{Code: "COMP-002", Project: "Edifício Sol", TotalPrice: dec("620000"), PrivateArea: dec("55"), Weight: dec("0.8"), Active: true, Provenance: domain.ProvenanceAI, Order: 2},
		{Code: "COMP-003", Project: "Torre Norte", TotalPrice: dec("900000"), PrivateArea: dec("70"), Weight: dec("0.9"), Active: false, Provenance: domain.ProvenanceAI, Order: 3},
	}
	subject := domain.SubjectProperty{City: "Florianópolis", Neighborhood: "Centro", PrivateArea: dec("58"), BuildingAge: 5, Amenities: domain.AmenityComplete}
	result, err := valuation.NewComparableWeightingEngine(valuation.PolicyPermissive).Valuate(comparables, subject)
	require.NoError(t, err)
	return &domain.ValuationReport{Subject: subject, Comparables: comparables, Result: result, Policy: string(valuation.PolicyPermissive)}
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"console", "console"},
		{"verbose", "console"},
		{"TABLE", "console"},
		{"console-lite", "console-lite"},
		{"summary", "console-lite"},
		{"csv", "csv"},
		{"chart", "chart"},
		{"chart-csv", "chart-csv"},
		{"json", "json"},
		{" yml ", "yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.expected, f.Name())
		})
	}

	assert.Nil(t, GetFormatterByName("html"))
}

func TestCapabilityLookups(t *testing.T) {
	for _, name := range []string{"console", "csv", "json", "yaml"} {
		assert.NotNil(t, GetValuationFormatterByName(name), name)
		assert.NotNil(t, GetSensitivityFormatterByName(name), name)
	}
	assert.Nil(t, GetValuationFormatterByName("console-lite"))
	assert.Nil(t, GetSensitivityFormatterByName("chart"))
	assert.Nil(t, GetValuationFormatterByName("nope"))
}

func TestAvailableNamesAndAliases(t *testing.T) {
	names := AvailableFormatterNames()
	assert.ElementsMatch(t, []string{"console-lite", "console", "csv", "chart-csv", "chart", "json", "yaml"}, names)

	aliases := AvailableFormatAliases()
	assert.Contains(t, aliases, "verbose")
	assert.Contains(t, aliases, "yml")
	assert.IsIncreasing(t, aliases)
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "R$ 1.234.567", FormatCurrency(dec("1234567")))
	assert.Equal(t, "R$ 1.000", FormatCurrency(dec("999.5")))
	assert.Equal(t, "R$ 0", FormatCurrency(decimal.Zero))
	assert.Equal(t, "-R$ 52.300", FormatCurrency(dec("-52300")))
}

func TestFormatPercentageAndCompact(t *testing.T) {
	assert.Equal(t, "13.25%", FormatPercentage(dec("13.25")))
	assert.Equal(t, "-100.00%", FormatPercentage(dec("-100")))
	assert.Equal(t, "1.25M", FormatCompact(dec("1250000")))
	assert.Equal(t, "150.0K", FormatCompact(dec("150000")))
	assert.Equal(t, "-2.5K", FormatCompact(dec("-2500")))
	assert.Equal(t, "999", FormatCompact(dec("999")))
}

func TestFormatterFunc(t *testing.T) {
	var received *domain.SimulationReport
	f := FormatterFunc{ID: "custom", F: func(r *domain.SimulationReport) ([]byte, error) {
		received = r
		return []byte("ok"), nil
	}}
	report := &domain.SimulationReport{Name: "x"}

	out, err := f.Format(report)

	require.NoError(t, err)
	assert.Equal(t, "custom", f.Name())
	assert.Equal(t, []byte("ok"), out)
	assert.Same(t, report, received)
}

func TestWriteFormatted(t *testing.T) {
	t.Chdir(t.TempDir())

	f := FormatterFunc{ID: "custom", F: func(*domain.SimulationReport) ([]byte, error) {
		return []byte("report body"), nil
	}}
	filename, err := WriteFormatted(f, &domain.SimulationReport{}, "txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "simulation_report_"))
	assert.True(t, strings.HasSuffix(filename, ".txt"))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "report body", string(content))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	f := FormatterFunc{ID: "broken", F: func(*domain.SimulationReport) ([]byte, error) {
		return nil, errors.New("formatter error")
	}}
	filename, err := WriteFormatted(f, &domain.SimulationReport{}, "txt")
	assert.ErrorContains(t, err, "formatter error")
	assert.Empty(t, filename)
}

func TestConsoleVerboseFormatter_Format(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(testReport(t, false))
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "INVESTMENT SCENARIO SIMULATION: Tower A")
	assert.Contains(t, content, "R$ 500.000")
	assert.Contains(t, content, "36 x R$ 1.500")
	assert.Contains(t, content, "defaults for selic")
	assert.Contains(t, content, "Month 6 (under construction)")
	assert.Contains(t, content, "At delivery")
	assert.Contains(t, content, "+24m after delivery")
	assert.Contains(t, content, "KEY ASSUMPTIONS")
	assert.Contains(t, content, "SUMMARY")
	assert.Contains(t, content, "RECOMMENDATIONS")
}

func TestConsoleVerboseFormatter_NilReport(t *testing.T) {
	_, err := ConsoleVerboseFormatter{}.Format(nil)
	assert.Error(t, err)
}

func TestConsoleFormatter_Format(t *testing.T) {
	report := testReport(t, false)
	out, err := ConsoleFormatter{}.Format(report)
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "INVESTMENT SIMULATION SUMMARY")
	assert.Contains(t, content, "Plan: Tower A")
	assert.Contains(t, content, "Scenarios: 10")
	assert.Contains(t, content, "Best: "+report.Summary.BestByNetProfit.Label)
}

func TestCSVSummarizer_Format(t *testing.T) {
	report := testReport(t, false)
	out, err := CSVSummarizer{}.Format(report)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(report.Scenarios)+1)
	assert.Equal(t, "month", records[0][0])
	assert.Equal(t, "6", records[1][0])
	assert.Equal(t, "construction", records[1][2])
	assert.Equal(t, report.Scenarios[0].NetProfit.StringFixed(0), records[1][8])
	assert.Equal(t, "delivery", records[6][2])
}

func TestChartFormatters(t *testing.T) {
	report := testReport(t, true)

	out, err := ChartCSVFormatter{}.Format(report)
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 61)
	assert.Equal(t, "60", records[60][0])

	out, err = ChartConsoleFormatter{}.Format(report)
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "Projection by sale month: Tower A")
	assert.Contains(t, content, "Legend:")
	assert.Contains(t, content, "Net profit")
	assert.Contains(t, content, "m1")

	_, err = ChartConsoleFormatter{}.Format(testReport(t, false))
	assert.ErrorContains(t, err, "no chart series")
}

func TestASCIIChart_Degenerate(t *testing.T) {
	assert.Contains(t, NewASCIIChart("empty").Render(), "No data to display")

	flat := NewASCIIChart("").AddSeries("flat", []float64{5, 5, 5}, ColorChartLine1).Render()
	assert.Contains(t, flat, "●")

	single := NewASCIIChart("").AddSeries("one", []float64{42}, ColorChartLine1).Render()
	assert.Contains(t, single, "●")
}

func TestStructuredFormatters_RoundTrip(t *testing.T) {
	report := testReport(t, false)

	out, err := JSONFormatter{}.Format(report)
	require.NoError(t, err)
	var fromJSON domain.SimulationReport
	require.NoError(t, json.Unmarshal(out, &fromJSON))
	assert.Equal(t, "Tower A", fromJSON.Name)
	require.Len(t, fromJSON.Scenarios, len(report.Scenarios))
	assert.True(t, report.Scenarios[3].NetProfit.Equal(fromJSON.Scenarios[3].NetProfit))

	out, err = YAMLFormatter{}.Format(report)
	require.NoError(t, err)
	var fromYAML domain.SimulationReport
	require.NoError(t, yaml.Unmarshal(out, &fromYAML))
	require.Len(t, fromYAML.Scenarios, len(report.Scenarios))
	assert.True(t, report.Scenarios[3].AnnualizedPercent.Equal(fromYAML.Scenarios[3].AnnualizedPercent))
	assert.Equal(t, report.Summary.BreakEvenMonth, fromYAML.Summary.BreakEvenMonth)
}

func TestValuationFormatters(t *testing.T) {
	report := testValuation(t)

	out, err := ConsoleVerboseFormatter{}.FormatValuation(report)
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "COMPARATIVE MARKET VALUATION")
	assert.Contains(t, content, "Centro, Florianópolis")
	assert.Contains(t, content, "Torre Norte")
	assert.Contains(t, content, "Active comparables:")
	assert.Contains(t, content, FormatCurrency(report.Result.AppraisedValue))
	assert.Contains(t, content, "factor 0.90")

	out, err = CSVSummarizer{}.FormatValuation(report)
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "10000.00", records[1][5])
	assert.Equal(t, "false", records[3][7])

	out, err = JSONFormatter{}.FormatValuation(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"weightPolicy": "permissive"`)

	out, err = YAMLFormatter{}.FormatValuation(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), "weight_policy: permissive")
}

func TestSensitivityFormatters(t *testing.T) {
	analysis, err := calculation.NewSensitivityAnalyzer().Analyze(testPlan(), domain.AppreciationParam, 36)
	require.NoError(t, err)

	out, err := ConsoleVerboseFormatter{}.FormatSensitivityAnalysis(analysis)
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "SENSITIVITY ANALYSIS: APPRECIATION")
	assert.Contains(t, content, "Sale at: At delivery")
	assert.Contains(t, content, "Base case: appreciation = 7.00%")
	assert.Contains(t, content, "net profit moves")
	assert.Contains(t, content, "RISK LEVEL: ")

	out, err = CSVSummarizer{}.FormatSensitivityAnalysis(analysis)
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, "appreciation", records[1][0])
	assert.Equal(t, "36", records[1][2])

	out, err = JSONFormatter{}.FormatSensitivityAnalysis(analysis)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"riskLevel"`)

	_, err = ConsoleVerboseFormatter{}.FormatSensitivityAnalysis(&domain.SensitivityAnalysis{})
	assert.Error(t, err)
}
