package calculation

import (
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Capital gains on the sale of real estate use the progressive schedule
//    15% / 17.5% / 20% / 22.5% with breakpoints at 5M, 10M and 30M, applied
//    marginally.
//
// 2. Fixed-income yield uses the regressive schedule keyed on the holding
//    period in days: 22.5% up to 180, 20% up to 360, 17.5% up to 720 and 15%
//    beyond that.
//
// 3. Neither calculator rounds; scenario evaluation rounds the final figures.

// TaxBracket is one marginal bracket of a progressive schedule.
// A zero Max marks the open-ended top bracket.
type TaxBracket struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal
}

// CapitalGainsTaxCalculator computes progressive tax on a real-estate sale gain.
type CapitalGainsTaxCalculator struct {
	Brackets []TaxBracket
}

// DefaultCapitalGainsBrackets returns the current progressive schedule.
func DefaultCapitalGainsBrackets() []TaxBracket {
	return []TaxBracket{
		{decimal.Zero, decimal.NewFromInt(5_000_000), decimal.NewFromFloat(0.15)},
		{decimal.NewFromInt(5_000_000), decimal.NewFromInt(10_000_000), decimal.NewFromFloat(0.175)},
		{decimal.NewFromInt(10_000_000), decimal.NewFromInt(30_000_000), decimal.NewFromFloat(0.20)},
		{decimal.NewFromInt(30_000_000), decimal.Zero, decimal.NewFromFloat(0.225)},
	}
}

// NewCapitalGainsTaxCalculator creates a calculator with the default schedule
func NewCapitalGainsTaxCalculator() *CapitalGainsTaxCalculator {
	return &CapitalGainsTaxCalculator{Brackets: DefaultCapitalGainsBrackets()}
}

// CalculateTax returns the tax due on gain. Non-positive gains owe nothing.
func (c *CapitalGainsTaxCalculator) CalculateTax(gain decimal.Decimal) decimal.Decimal {
	if gain.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var totalTax decimal.Decimal
	for _, bracket := range c.Brackets {
		if gain.LessThanOrEqual(bracket.Min) {
			break
		}
		upper := gain
		if !bracket.Max.IsZero() {
			upper = decimal.Min(gain, bracket.Max)
		}
		portion := upper.Sub(bracket.Min)
		if portion.GreaterThan(decimal.Zero) {
			totalTax = totalTax.Add(portion.Mul(bracket.Rate))
		}
	}

	return totalTax
}

// HoldingPeriodTier is one step of the regressive fixed-income schedule.
// A zero MaxDays marks the final, open-ended tier.
type HoldingPeriodTier struct {
	MaxDays int
	Rate    decimal.Decimal
}

// FixedIncomeTaxCalculator computes regressive tax on fixed-income yield.
type FixedIncomeTaxCalculator struct {
	Tiers []HoldingPeriodTier
}

// DefaultFixedIncomeTiers returns the current regressive schedule.
func DefaultFixedIncomeTiers() []HoldingPeriodTier {
	return []HoldingPeriodTier{
		{MaxDays: 180, Rate: decimal.NewFromFloat(0.225)},
		{MaxDays: 360, Rate: decimal.NewFromFloat(0.20)},
		{MaxDays: 720, Rate: decimal.NewFromFloat(0.175)},
		{MaxDays: 0, Rate: decimal.NewFromFloat(0.15)},
	}
}

// NewFixedIncomeTaxCalculator creates a calculator with the default schedule
func NewFixedIncomeTaxCalculator() *FixedIncomeTaxCalculator {
	return &FixedIncomeTaxCalculator{Tiers: DefaultFixedIncomeTiers()}
}

// RateFor returns the rate applicable to a holding period.
func (f *FixedIncomeTaxCalculator) RateFor(days int) decimal.Decimal {
	for _, tier := range f.Tiers {
		if tier.MaxDays == 0 || days <= tier.MaxDays {
			return tier.Rate
		}
	}
	if len(f.Tiers) == 0 {
		return decimal.Zero
	}
	return f.Tiers[len(f.Tiers)-1].Rate
}

// CalculateTax returns the tax due on a gross yield held for days.
func (f *FixedIncomeTaxCalculator) CalculateTax(grossYield decimal.Decimal, days int) decimal.Decimal {
	if grossYield.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return grossYield.Mul(f.RateFor(days))
}
