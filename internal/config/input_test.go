package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/pharosnegocios/imobcalc/internal/valuation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const simulationYAML = `
name: Residencial Atlântico
plan:
  launch_price: 600000
  entry_payment: 60000
  monthly_installments: 24
  monthly_installment_value: 2000
  semiannual_installments: 4
  semiannual_installment_value: 10000
  annual_installments: 2
  annual_installment_value: 15000
  key_delivery_balance: 372000
  construction_term_months: 24
  correction_index: incc
  annual_correction_rate: 6
  transfer_tax_percent: 2
  registration_cost: 3000
  sale_commission_percent: 6
  annual_appreciation_rate: 8
  policy_rate: 13.25
  interbank_rate: 13.15
  tax_exempt_rate: 12
`

const valuationYAML = `
name: Apto 302
weight_policy: Clamp
subject:
  city: Itapema
  neighborhood: Meia Praia
  kind: apartamento
  private_area: 80
  building_age: 25
  amenities: basic
comparables:
  - code: BC-001
    project: Edifício Solar
    total_price: 850000
    private_area: 75
    bedrooms: 2
    weight: 1
  - project: Residencial Mar
    total_price: 720000
    private_area: 60
    active: false
    provenance: ia
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func validPlan() domain.InvestmentPlan {
	return domain.InvestmentPlan{
		LaunchPrice:            decimal.NewFromInt(500000),
		EntryPayment:           decimal.NewFromInt(50000),
		ConstructionTermMonths: 36,
		CorrectionIndex:        domain.CorrectionIPCA,
		AnnualCorrectionRate:   decimal.NewFromFloat(4.5),
		SaleCommissionPercent:  decimal.NewFromInt(6),
		AnnualAppreciationRate: decimal.NewFromInt(5),
		PolicyRate:             decimal.NewFromFloat(13.25),
		InterbankRate:          decimal.NewFromFloat(13.15),
		TaxExemptRate:          decimal.NewFromInt(12),
	}
}

func TestLoadSimulation(t *testing.T) {
	parser := NewInputParser()
	input, err := parser.LoadSimulation(writeFile(t, "sim.yaml", simulationYAML))
	require.NoError(t, err)

	assert.Equal(t, "Residencial Atlântico", input.Name)
	assert.True(t, decimal.NewFromInt(600000).Equal(input.Plan.LaunchPrice))
	assert.Equal(t, 24, input.Plan.MonthlyInstallments)
	assert.Equal(t, domain.CorrectionINCC, input.Plan.CorrectionIndex)
	assert.True(t, decimal.NewFromFloat(13.25).Equal(input.Plan.PolicyRate))
}

func TestLoadSimulation_JSON(t *testing.T) {
	parser := NewInputParser()
	input, err := parser.LoadSimulation(writeFile(t, "sim.json",
		`{"plan": {"launch_price": 400000, "entry_payment": 40000, "construction_term_months": 30}}`))
	require.NoError(t, err)
	assert.Equal(t, domain.CorrectionIPCA, input.Plan.CorrectionIndex)
	assert.Equal(t, 30, input.Plan.ConstructionTermMonths)
}

func TestLoadSimulation_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadSimulation(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read file")

	_, err = parser.LoadSimulation(writeFile(t, "bad.yaml", "plan: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse YAML")

	_, err = parser.LoadSimulation(writeFile(t, "invalid.yaml", "plan:\n  launch_price: 0\n"))
	assert.True(t, errors.Is(err, ErrInvalidPlan))
}

func TestValidatePlan(t *testing.T) {
	parser := NewInputParser()
	require.NoError(t, parser.ValidatePlan(validPlan()))

	tests := []struct {
		name    string
		mutate  func(p *domain.InvestmentPlan)
		message string
	}{
		{"zero launch price", func(p *domain.InvestmentPlan) { p.LaunchPrice = decimal.Zero }, "launch price must be positive"},
		{"negative entry", func(p *domain.InvestmentPlan) { p.EntryPayment = decimal.NewFromInt(-1) }, "entry payment must not be negative"},
		{"negative count", func(p *domain.InvestmentPlan) { p.MonthlyInstallments = -3 }, "monthly installments must not be negative"},
		{"zero term", func(p *domain.InvestmentPlan) { p.ConstructionTermMonths = 0 }, "construction term must be at least 1 month"},
		{"unknown index", func(p *domain.InvestmentPlan) { p.CorrectionIndex = "IGPM" }, `unknown correction index "IGPM"`},
		{"commission over 100", func(p *domain.InvestmentPlan) { p.SaleCommissionPercent = decimal.NewFromInt(101) }, "sale commission must be between 0 and 100"},
		{"appreciation below -100", func(p *domain.InvestmentPlan) { p.AnnualAppreciationRate = decimal.NewFromInt(-101) }, "appreciation must not be below -100"},
		{"negative policy rate", func(p *domain.InvestmentPlan) { p.PolicyRate = decimal.NewFromInt(-1) }, "policy rate must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := validPlan()
			tt.mutate(&plan)
			err := parser.ValidatePlan(plan)
			assert.ErrorIs(t, err, ErrInvalidPlan)
			assert.ErrorContains(t, err, tt.message)
		})
	}
}

func TestValidatePlan_ReportsAllProblems(t *testing.T) {
	plan := validPlan()
	plan.LaunchPrice = decimal.Zero
	plan.ConstructionTermMonths = 0

	err := NewInputParser().ValidatePlan(plan)
	assert.ErrorContains(t, err, "launch price must be positive; construction term must be at least 1 month")

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"launch price must be positive", "construction term must be at least 1 month"}, verr.Problems)
}

func TestNormalizePlan(t *testing.T) {
	parser := NewInputParser()

	plan := validPlan()
	plan.CorrectionIndex = ""
	normalized, err := parser.NormalizePlan(plan)
	require.NoError(t, err)
	assert.Equal(t, domain.CorrectionIPCA, normalized.CorrectionIndex)

	plan.CorrectionIndex = "cub"
	normalized, err = parser.NormalizePlan(plan)
	require.NoError(t, err)
	assert.Equal(t, domain.CorrectionCUB, normalized.CorrectionIndex)
}

func TestLoadValuation(t *testing.T) {
	parser := NewInputParser()
	input, err := parser.LoadValuation(writeFile(t, "val.yaml", valuationYAML))
	require.NoError(t, err)

	assert.Equal(t, "clamp", input.WeightPolicy)
	assert.Equal(t, domain.AmenityBasic, input.Subject.Amenities)
	assert.Equal(t, 25, input.Subject.BuildingAge)
	require.Len(t, input.Comparables, 2)

	first := input.Comparables[0]
	assert.Equal(t, "BC-001", first.Code)
	assert.True(t, first.Active)
	assert.True(t, decimal.NewFromInt(1).Equal(first.Weight))
	assert.Equal(t, domain.ProvenanceManual, first.Provenance)
	assert.Equal(t, 1, first.Order)

	second := input.Comparables[1]
	assert.Equal(t, "COMP-002", second.Code)
	assert.False(t, second.Active)
	assert.True(t, decimal.NewFromFloat(0.9).Equal(second.Weight))
	assert.Equal(t, domain.ProvenanceAI, second.Provenance)
	assert.Equal(t, 2, second.Order)
}

func TestValidateValuation(t *testing.T) {
	parser := NewInputParser()

	input := &ValuationInput{
		WeightPolicy: "lenient",
		Subject:      domain.SubjectProperty{BuildingAge: -1, Amenities: "luxury"},
		Comparables: []domain.Comparable{
			{Code: "X", TotalPrice: decimal.NewFromInt(-1), Weight: decimal.NewFromInt(-2), Provenance: "web"},
		},
	}

	err := parser.ValidateValuation(input)
	require.ErrorIs(t, err, ErrInvalidValuation)
	for _, msg := range []string{
		"unknown amenity level",
		"building age must not be negative",
		"unknown weight policy",
		"comparable 1 (X): total price must not be negative",
		"comparable 1 (X): weight must not be negative",
		`comparable 1 (X): unknown provenance "web"`,
	} {
		assert.ErrorContains(t, err, msg)
	}
}

func TestValuationInput_Policy(t *testing.T) {
	input := &ValuationInput{}
	assert.Equal(t, valuation.PolicyStrict, input.Policy(valuation.PolicyStrict))

	input.WeightPolicy = "CLAMP"
	assert.Equal(t, valuation.PolicyClamp, input.Policy(valuation.PolicyStrict))

	input.WeightPolicy = "bogus"
	assert.Equal(t, valuation.PolicyPermissive, input.Policy(valuation.PolicyPermissive))
}

func TestParseValuation_BlankDefaultsCountAsOmitted(t *testing.T) {
	doc := `
subject:
  amenities: completo
comparables:
  - code: A
    total_price: 1000000
    private_area: 100
    weight: null
    active: null
  - code: B
    total_price: 500000
    private_area: 100
    weight: 0.9
  - code: C
    total_price: 800000
    private_area: 100
    weight: ""
    active: ""
  - code: D
    total_price: 800000
    private_area: 100
    weight: 0
    active: false
`
	input, err := NewInputParser().ParseValuation([]byte(doc))
	require.NoError(t, err)
	require.Len(t, input.Comparables, 4)

	for _, c := range input.Comparables[:3] {
		assert.True(t, c.Active, c.Code)
		assert.True(t, valuation.DefaultWeight.Equal(c.Weight), "%s weight %s", c.Code, c.Weight)
	}
	// explicit values are kept
	assert.False(t, input.Comparables[3].Active)
	assert.True(t, input.Comparables[3].Weight.IsZero())

	result, err := valuation.NewComparableWeightingEngine(valuation.PolicyPermissive).
		Valuate(input.Comparables[:2], input.Subject)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(7500).Equal(result.WeightedPricePerArea), result.WeightedPricePerArea.String())
	assert.Equal(t, 2, result.ActiveCount)
}
