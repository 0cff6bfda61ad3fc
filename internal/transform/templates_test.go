package transform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()
	registry.Register(Template{Name: "My_Template", Description: "A test template"})

	got, ok := registry.Get("my_template")
	require.True(t, ok)
	assert.Equal(t, "A test template", got.Description)

	_, ok = registry.Get("MY_TEMPLATE")
	assert.True(t, ok)

	_, ok = registry.Get("missing")
	assert.False(t, ok)
}

func TestBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	assert.Equal(t, []string{
		"best_case", "bigger_entry", "commission_4pct", "delay_12m", "delay_6m",
		"high_inflation", "optimistic", "pessimistic", "selic_cut", "stagnant", "worst_case",
	}, registry.List())

	// every built-in template applies cleanly to a typical plan
	for _, name := range registry.List() {
		tmpl, _ := registry.Get(name)
		_, err := ApplyTemplate(testPlan(), tmpl)
		assert.NoError(t, err, name)
	}
}

func TestApplyTemplate(t *testing.T) {
	registry := CreateBuiltInTemplates()

	worst, ok := registry.Get("worst_case")
	require.True(t, ok)

	got, err := ApplyTemplate(testPlan(), worst)
	require.NoError(t, err)
	assert.True(t, got.AnnualAppreciationRate.IsZero())
	assert.Equal(t, 48, got.ConstructionTermMonths)
	assert.True(t, got.AnnualCorrectionRate.Equal(d("9")))

	entry, _ := registry.Get("bigger_entry")
	plan := testPlan()
	plan.KeyDeliveryBalance = d("10000")
	_, err = ApplyTemplate(plan, entry)
	assert.ErrorContains(t, err, "shift_to_entry validation failed")
}

func TestParseTemplateList(t *testing.T) {
	assert.Nil(t, ParseTemplateList(""))
	assert.Equal(t, []string{"optimistic", "delay_6m"}, ParseTemplateList(" optimistic, ,delay_6m "))
}

func TestGetTemplateHelp(t *testing.T) {
	assert.Equal(t, "No templates registered", GetTemplateHelp(NewTemplateRegistry()))

	help := GetTemplateHelp(CreateBuiltInTemplates())
	assert.True(t, strings.HasPrefix(help, "Available Templates:"))
	for _, want := range []string{"Market:", "Delivery:", "Rates:", "Payment:", "Combined:", "worst_case", "Keys delivered 6 months late"} {
		assert.Contains(t, help, want)
	}
	assert.Less(t, strings.Index(help, "Market:"), strings.Index(help, "Combined:"))
}
