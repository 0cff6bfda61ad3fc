package compare

import (
	"testing"

	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareEngine_Simulate(t *testing.T) {
	engine := NewCompareEngine(nil)
	rates := domain.DefaultReferenceRates()

	report := engine.Simulate("Tower A", entryOnlyPlan(), ReportOptions{Rates: &rates})

	assert.Equal(t, "Tower A", report.Name)
	assert.Same(t, &rates, report.Rates)
	require.Len(t, report.Scenarios, 10)
	assert.Empty(t, report.Chart)

	require.NotNil(t, report.Summary.AtDelivery)
	assert.Equal(t, 36, report.Summary.AtDelivery.Month)
	require.NotNil(t, report.Summary.BestByNetProfit)
	assert.Equal(t, 60, report.Summary.BestByNetProfit.Month)
	require.NotNil(t, report.Summary.BestByAnnualized)
	assert.Equal(t, 6, report.Summary.BestByAnnualized.Month)
	assert.Equal(t, 6, report.Summary.BreakEvenMonth)
}

func TestCompareEngine_Simulate_WithChart(t *testing.T) {
	report := NewCompareEngine(nil).Simulate("Tower A", entryOnlyPlan(), ReportOptions{IncludeChart: true})

	require.Len(t, report.Chart, 60)
	assert.Equal(t, 1, report.Chart[0].Month)
	assert.Equal(t, 60, report.Chart[59].Month)
}

func TestCompareEngine_ComparePlans(t *testing.T) {
	engine := NewCompareEngine(nil)
	base := NamedPlan{Name: "Base", Plan: entryOnlyPlan()}

	faster := entryOnlyPlan()
	faster.AnnualAppreciationRate = dec("9")
	slower := entryOnlyPlan()
	slower.AnnualAppreciationRate = dec("1")

	compSet, err := engine.ComparePlans(base, []NamedPlan{
		{Name: "Faster", Plan: faster},
		{Name: "Slower", Plan: slower},
	})
	require.NoError(t, err)

	assert.Equal(t, "Base", compSet.BasePlanName)
	require.NotNil(t, compSet.BaseResult)
	require.Len(t, compSet.AlternativeResults, 2)

	assert.True(t, compSet.AlternativeResults[0].NetProfitDiffFromBase.IsPositive())
	assert.True(t, compSet.AlternativeResults[1].NetProfitDiffFromBase.IsNegative())

	require.NotEmpty(t, compSet.Recommendations)
	assert.Contains(t, compSet.Recommendations[0], "Faster")
}

func TestCompareEngine_ComparePlans_DuplicateName(t *testing.T) {
	engine := NewCompareEngine(nil)
	base := NamedPlan{Name: "Base", Plan: entryOnlyPlan()}

	_, err := engine.ComparePlans(base, []NamedPlan{{Name: "Base", Plan: entryOnlyPlan()}})
	assert.ErrorContains(t, err, "duplicate plan name")
}
