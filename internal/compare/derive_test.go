package compare

import (
	"testing"

	"github.com/pharosnegocios/imobcalc/internal/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveAlternatives(t *testing.T) {
	base := NamedPlan{Name: "Tower A", Plan: entryOnlyPlan()}
	templates := transform.CreateBuiltInTemplates()

	plans, err := DeriveAlternatives(base, templates, []string{"Stagnant", "delay_6m"}, []string{"set_policy_rate:rate=9"})
	require.NoError(t, err)
	require.Len(t, plans, 3)

	assert.Equal(t, "Tower A + stagnant", plans[0].Name)
	assert.True(t, plans[0].Plan.AnnualAppreciationRate.IsZero())
	assert.Equal(t, "Tower A + delay_6m", plans[1].Name)
	assert.Equal(t, 42, plans[1].Plan.ConstructionTermMonths)
	assert.Equal(t, "Tower A + set_policy_rate:rate=9", plans[2].Name)
	assert.True(t, plans[2].Plan.PolicyRate.Equal(dec("9")))

	// base is untouched
	assert.True(t, base.Plan.AnnualAppreciationRate.Equal(dec("5")))

	set, err := NewCompareEngine(nil).ComparePlans(base, plans)
	require.NoError(t, err)
	assert.True(t, set.AlternativeResults[0].NetProfitDiffFromBase.IsNegative())
}

func TestDeriveAlternatives_Errors(t *testing.T) {
	base := NamedPlan{Name: "Tower A", Plan: entryOnlyPlan()}
	templates := transform.CreateBuiltInTemplates()

	_, err := DeriveAlternatives(base, templates, []string{"moonshot"}, nil)
	assert.ErrorContains(t, err, `unknown template "moonshot"`)

	_, err = DeriveAlternatives(base, templates, []string{"bigger_entry"}, nil)
	assert.ErrorContains(t, err, "template bigger_entry")

	_, err = DeriveAlternatives(base, templates, nil, []string{"set_commission:percent=150"})
	assert.ErrorContains(t, err, "set_commission validation failed")
}
