package record

import (
	"errors"
	"testing"
	"time"

	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func parsePlan(t *testing.T, raw string) (domain.InvestmentPlan, error) {
	t.Helper()
	sim, err := ParseSimulation([]byte(raw))
	require.NoError(t, err)
	return sim.Plan()
}

func TestSimulation_Plan_FullRecord(t *testing.T) {
	plan, err := parsePlan(t, `{
		"empreendimento_nome": "Residencial Atlântico",
		"valor_lancamento": 500000,
		"entrada": "50000",
		"parcelas_mensais": 24,
		"valor_parcela_mensal": 1500.50,
		"parcelas_semestrais": "4",
		"valor_parcela_semestral": 10000,
		"parcelas_anuais": 2,
		"valor_parcela_anual": 20000,
		"saldo_chaves": 300000,
		"data_lancamento": "2024-01-01",
		"data_entrega_estimada": "2026-01-01T00:00:00Z",
		"tipo_correcao": "incc",
		"taxa_correcao_anual": 6.2,
		"pos_chaves_indice": "IGPM",
		"pos_chaves_juros": 1,
		"itbi_percentual": 3,
		"registro_cartorio": 4500,
		"comissao_venda_percentual": 5,
		"valorizacao_anual_estimada": -2,
		"taxa_selic": 10.75,
		"taxa_cdb": 10.65,
		"taxa_lci": 9.5
	}`)
	require.NoError(t, err)

	assert.True(t, dec("500000").Equal(plan.LaunchPrice))
	assert.True(t, dec("50000").Equal(plan.EntryPayment))
	assert.Equal(t, 24, plan.MonthlyInstallments)
	assert.True(t, dec("1500.5").Equal(plan.MonthlyInstallmentValue))
	assert.Equal(t, 4, plan.SemiannualInstallments)
	assert.Equal(t, 2, plan.AnnualInstallments)
	assert.True(t, dec("300000").Equal(plan.KeyDeliveryBalance))
	assert.Equal(t, 24, plan.ConstructionTermMonths)
	assert.Equal(t, domain.CorrectionINCC, plan.CorrectionIndex)
	assert.True(t, dec("6.2").Equal(plan.AnnualCorrectionRate))
	assert.Equal(t, "IGPM", plan.PostDeliveryIndex)
	assert.True(t, dec("-2").Equal(plan.AnnualAppreciationRate))
	assert.True(t, dec("10.75").Equal(plan.PolicyRate))
	assert.True(t, dec("10.65").Equal(plan.InterbankRate))
	assert.True(t, dec("9.5").Equal(plan.TaxExemptRate))
}

func TestSimulation_Plan_Defaults(t *testing.T) {
	for _, raw := range []string{
		`{"valor_lancamento": 400000}`,
		`{"valor_lancamento": 400000, "entrada": null, "taxa_selic": null, "tipo_correcao": null, "itbi_percentual": ""}`,
	} {
		plan, err := parsePlan(t, raw)
		require.NoError(t, err, raw)

		assert.True(t, plan.EntryPayment.IsZero())
		assert.Equal(t, 0, plan.MonthlyInstallments)
		assert.Equal(t, domain.CorrectionIPCA, plan.CorrectionIndex)
		assert.True(t, dec("4.5").Equal(plan.AnnualCorrectionRate))
		assert.Equal(t, "IPCA", plan.PostDeliveryIndex)
		assert.True(t, plan.PostDeliveryInterest.IsZero())
		assert.True(t, dec("2").Equal(plan.TransferTaxPercent))
		assert.True(t, dec("3000").Equal(plan.RegistrationCost))
		assert.True(t, dec("6").Equal(plan.SaleCommissionPercent))
		assert.True(t, dec("5").Equal(plan.AnnualAppreciationRate))
		assert.True(t, dec("13.25").Equal(plan.PolicyRate))
		assert.True(t, dec("13.15").Equal(plan.InterbankRate))
		assert.True(t, dec("12").Equal(plan.TaxExemptRate))
		assert.Equal(t, DefaultConstructionTermMonths, plan.ConstructionTermMonths)
	}
}

func TestSimulation_Plan_ExplicitZeroIsNotDefaulted(t *testing.T) {
	sim, err := ParseSimulation([]byte(`{"valor_lancamento": 400000, "taxa_correcao_anual": 0, "comissao_venda_percentual": "0"}`))
	require.NoError(t, err)

	plan, err := sim.Plan()
	require.NoError(t, err)

	assert.True(t, plan.AnnualCorrectionRate.IsZero())
	assert.True(t, plan.SaleCommissionPercent.IsZero())
	assert.Equal(t, Zero, sim.Number("taxa_correcao_anual").Status)
	assert.Equal(t, Absent, sim.Number("taxa_selic").Status)
}

func TestSimulation_Plan_ReportsEveryInvalidField(t *testing.T) {
	_, err := parsePlan(t, `{
		"valor_lancamento": "abc",
		"entrada": -5,
		"parcelas_mensais": 2.5,
		"tipo_correcao": "xyz",
		"data_lancamento": "soon",
		"data_entrega_estimada": "2025-01-01",
		"pos_chaves_indice": 7
	}`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidField))

	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))

	got := map[string]bool{}
	for _, issue := range fieldErr.Issues {
		got[issue.Field] = true
	}
	assert.Equal(t, map[string]bool{
		"valor_lancamento":  true,
		"entrada":           true,
		"parcelas_mensais":  true,
		"tipo_correcao":     true,
		"data_lancamento":   true,
		"pos_chaves_indice": true,
	}, got)
}

func TestSimulation_Plan_LaunchPrice(t *testing.T) {
	_, err := parsePlan(t, `{"entrada": 1000}`)
	assert.ErrorContains(t, err, "valor_lancamento: required")

	_, err = parsePlan(t, `{"valor_lancamento": 0}`)
	assert.ErrorContains(t, err, "valor_lancamento: must be positive")
}

func TestSimulation_Name(t *testing.T) {
	sim, err := ParseSimulation([]byte(`{"empreendimento_nome": " Vista Mar "}`))
	require.NoError(t, err)
	assert.Equal(t, "Vista Mar", sim.Name())
}

func TestParseSimulation_Malformed(t *testing.T) {
	for _, raw := range []string{``, `[1,2]`, `null`, `{"a":`} {
		_, err := ParseSimulation([]byte(raw))
		assert.Error(t, err, raw)
	}
}

func TestNumberStatus(t *testing.T) {
	sim, err := ParseSimulation([]byte(`{
		"null": null, "empty": "", "zero": 0, "zero_string": "0.00",
		"number": 12.5, "string": " 7 ", "nan": "NaN", "bool": true, "object": {}
	}`))
	require.NoError(t, err)

	tests := map[string]Status{
		"missing":     Absent,
		"null":        Absent,
		"empty":       Absent,
		"zero":        Zero,
		"zero_string": Zero,
		"number":      Present,
		"string":      Present,
		"nan":         Invalid,
		"bool":        Invalid,
		"object":      Invalid,
	}
	for key, expected := range tests {
		assert.Equal(t, expected, sim.Number(key).Status, key)
	}
	assert.True(t, dec("7").Equal(sim.Number("string").Value))
	assert.True(t, sim.Number("zero").Usable())
	assert.False(t, sim.Number("nan").Usable())
}

func TestConstructionTermMonths(t *testing.T) {
	date := func(s string) *time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return &d
	}

	assert.Equal(t, 36, ConstructionTermMonths(nil, date("2026-01-01")))
	assert.Equal(t, 36, ConstructionTermMonths(date("2024-01-01"), nil))
	assert.Equal(t, 1, ConstructionTermMonths(date("2024-01-01"), date("2024-01-01")))
	assert.Equal(t, 1, ConstructionTermMonths(date("2024-06-01"), date("2024-01-01")))
	assert.Equal(t, 6, ConstructionTermMonths(date("2024-01-01"), date("2024-07-01")))
	assert.Equal(t, 2, ConstructionTermMonths(date("2024-01-01"), date("2024-02-15")))
	assert.Equal(t, 24, ConstructionTermMonths(date("2024-01-01"), date("2026-01-01")))
}
