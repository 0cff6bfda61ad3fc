package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioSeriesGenerator_Tabular(t *testing.T) {
	gen := NewScenarioSeriesGenerator(nil)
	plan := samplePlan()

	scenarios := gen.Tabular(plan)

	require.Len(t, scenarios, 8)
	assert.Equal(t, 6, scenarios[0].Month)
	assert.Equal(t, 48, scenarios[len(scenarios)-1].Month)
	for i := 1; i < len(scenarios); i++ {
		assert.Greater(t, scenarios[i].Month, scenarios[i-1].Month)
	}

	labels := make([]string, 0, len(scenarios))
	for _, s := range scenarios {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{
		"Month 6 (under construction)",
		"Month 12 (under construction)",
		"Month 18 (under construction)",
		"At delivery",
		"+6m after delivery",
		"+12m after delivery",
		"+18m after delivery",
		"+24m after delivery",
	}, labels)
}

func TestScenarioSeriesGenerator_TabularOddTerm(t *testing.T) {
	gen := NewScenarioSeriesGenerator(nil)
	plan := samplePlan()
	plan.ConstructionTermMonths = 31

	scenarios := gen.Tabular(plan)

	// horizon 55: 6, 12, ..., 54
	require.Len(t, scenarios, 9)
	assert.Equal(t, 54, scenarios[8].Month)
	for _, s := range scenarios {
		assert.NotEqual(t, "At delivery", s.Label)
	}
}

func TestScenarioSeriesGenerator_Dense(t *testing.T) {
	gen := NewScenarioSeriesGenerator(nil)
	plan := samplePlan()

	points := gen.Dense(plan)

	require.Len(t, points, 48)
	for i, p := range points {
		assert.Equal(t, i+1, p.Month)
	}

	// the dense projection agrees with the full evaluation
	full := gen.Evaluator.Evaluate(plan, 30)
	assert.Equal(t, full.PropertyValue, points[29].PropertyValue)
	assert.Equal(t, full.TotalInvested, points[29].TotalInvested)
	assert.Equal(t, full.NetProfit, points[29].NetProfit)
	assert.Equal(t, full.PolicyRateYield, points[29].PolicyRateYield)
}

func TestScenarioSeriesGenerator_Repeatable(t *testing.T) {
	gen := NewScenarioSeriesGenerator(nil)
	plan := samplePlan()

	assert.Equal(t, gen.Dense(plan), gen.Dense(plan))
	assert.Equal(t, gen.Tabular(plan), gen.Tabular(plan))
}
