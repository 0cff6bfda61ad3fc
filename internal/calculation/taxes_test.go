package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCapitalGainsTaxCalculator_CalculateTax(t *testing.T) {
	calc := NewCapitalGainsTaxCalculator()

	tests := []struct {
		name     string
		gain     string
		expected string
	}{
		{"negative gain", "-100", "0"},
		{"zero gain", "0", "0"},
		{"small gain", "1000", "150"},
		{"first bracket boundary", "5000000", "750000"},
		{"into second bracket", "6000000", "925000"},
		{"second bracket boundary", "10000000", "1625000"},
		{"third bracket boundary", "30000000", "5625000"},
		{"top bracket", "40000000", "7875000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimalEqual(t, tt.expected, calc.CalculateTax(dec(tt.gain)))
		})
	}
}

func TestCapitalGainsTaxCalculator_Monotonic(t *testing.T) {
	calc := NewCapitalGainsTaxCalculator()

	previous := decimal.Zero
	for gain := int64(-1_000_000); gain <= 45_000_000; gain += 250_000 {
		tax := calc.CalculateTax(decimal.NewFromInt(gain))
		assert.False(t, tax.IsNegative(), "tax must never be negative (gain %d)", gain)
		assert.True(t, tax.GreaterThanOrEqual(previous), "tax decreased at gain %d", gain)
		previous = tax
	}
}

func TestCapitalGainsTaxCalculator_NoRounding(t *testing.T) {
	calc := NewCapitalGainsTaxCalculator()
	assertDecimalEqual(t, "0.15", calc.CalculateTax(dec("1")))
	assertDecimalEqual(t, "15.1515", calc.CalculateTax(dec("101.01")))
}

func TestFixedIncomeTaxCalculator_Boundaries(t *testing.T) {
	calc := NewFixedIncomeTaxCalculator()
	yield := dec("1000")

	tests := []struct {
		days     int
		expected string
	}{
		{1, "225"},
		{180, "225"},
		{181, "200"},
		{360, "200"},
		{361, "175"},
		{720, "175"},
		{721, "150"},
		{3650, "150"},
	}

	for _, tt := range tests {
		tax := calc.CalculateTax(yield, tt.days)
		assertDecimalEqual(t, tt.expected, tax, "days=%d", tt.days)
	}
}

func TestFixedIncomeTaxCalculator_RateIndependentOfYield(t *testing.T) {
	calc := NewFixedIncomeTaxCalculator()

	for _, y := range []string{"0.01", "1", "12345.67", "9999999"} {
		yield := dec(y)
		assertDecimalEqual(t, "0.225", calc.CalculateTax(yield, 180).Div(yield))
		assertDecimalEqual(t, "0.2", calc.CalculateTax(yield, 181).Div(yield))
	}
}

func TestFixedIncomeTaxCalculator_NonPositiveYield(t *testing.T) {
	calc := NewFixedIncomeTaxCalculator()

	assert.True(t, calc.CalculateTax(decimal.Zero, 30).IsZero())
	assert.True(t, calc.CalculateTax(dec("-50"), 30).IsZero())
}

func TestFixedIncomeTaxCalculator_EmptySchedule(t *testing.T) {
	calc := &FixedIncomeTaxCalculator{}
	assert.True(t, calc.RateFor(100).IsZero())
}
