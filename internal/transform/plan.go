package transform

import (
	"fmt"

	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred    = decimal.NewFromInt(100)
	minusTotal = decimal.NewFromInt(-100)
)

// AdjustAppreciation adds Delta percentage points to the annual appreciation.
type AdjustAppreciation struct {
	Delta decimal.Decimal
}

func (t *AdjustAppreciation) Name() string { return "adjust_appreciation" }

func (t *AdjustAppreciation) Description() string {
	return fmt.Sprintf("Change appreciation by %s p.p. a year", signed(t.Delta))
}

func (t *AdjustAppreciation) Validate(base domain.InvestmentPlan) error {
	if base.AnnualAppreciationRate.Add(t.Delta).LessThan(minusTotal) {
		return NewTransformError(t.Name(), "validate", "appreciation would fall below -100%", nil)
	}
	return nil
}

func (t *AdjustAppreciation) Apply(base domain.InvestmentPlan) (domain.InvestmentPlan, error) {
	base.AnnualAppreciationRate = base.AnnualAppreciationRate.Add(t.Delta)
	return base, nil
}

// SetAppreciation replaces the annual appreciation.
type SetAppreciation struct {
	Rate decimal.Decimal
}

func (t *SetAppreciation) Name() string { return "set_appreciation" }

func (t *SetAppreciation) Description() string {
	return fmt.Sprintf("Appreciation of %s%% a year", t.Rate.String())
}

func (t *SetAppreciation) Validate(domain.InvestmentPlan) error {
	if t.Rate.LessThan(minusTotal) {
		return NewTransformError(t.Name(), "validate", "appreciation must not be below -100%", nil)
	}
	return nil
}

func (t *SetAppreciation) Apply(base domain.InvestmentPlan) (domain.InvestmentPlan, error) {
	base.AnnualAppreciationRate = t.Rate
	return base, nil
}

// SetCommission replaces the broker commission on sale.
type SetCommission struct {
	Percent decimal.Decimal
}

func (t *SetCommission) Name() string { return "set_commission" }

func (t *SetCommission) Description() string {
	return fmt.Sprintf("Sale commission of %s%%", t.Percent.String())
}

func (t *SetCommission) Validate(domain.InvestmentPlan) error {
	if t.Percent.IsNegative() || t.Percent.GreaterThan(hundred) {
		return NewTransformError(t.Name(), "validate", "commission must be between 0 and 100", nil)
	}
	return nil
}

func (t *SetCommission) Apply(base domain.InvestmentPlan) (domain.InvestmentPlan, error) {
	base.SaleCommissionPercent = t.Percent
	return base, nil
}

// DelayDelivery moves key delivery Months later. The installment schedule is
// unchanged; only the delivery month and the horizon move.
type DelayDelivery struct {
	Months int
}

func (t *DelayDelivery) Name() string { return "delay_delivery" }

func (t *DelayDelivery) Description() string {
	return fmt.Sprintf("Deliver the keys %d months later", t.Months)
}

func (t *DelayDelivery) Validate(base domain.InvestmentPlan) error {
	if base.ConstructionTermMonths+t.Months < 1 {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("construction term would be %d months", base.ConstructionTermMonths+t.Months), nil)
	}
	return nil
}

func (t *DelayDelivery) Apply(base domain.InvestmentPlan) (domain.InvestmentPlan, error) {
	base.ConstructionTermMonths += t.Months
	return base, nil
}

// AdjustCorrectionRate adds Delta percentage points to the annual rate of
// the correction index.
type AdjustCorrectionRate struct {
	Delta decimal.Decimal
}

func (t *AdjustCorrectionRate) Name() string { return "adjust_correction_rate" }

func (t *AdjustCorrectionRate) Description() string {
	return fmt.Sprintf("Change the correction index by %s p.p. a year", signed(t.Delta))
}

func (t *AdjustCorrectionRate) Validate(base domain.InvestmentPlan) error {
	if base.AnnualCorrectionRate.Add(t.Delta).IsNegative() {
		return NewTransformError(t.Name(), "validate", "correction rate would be negative", nil)
	}
	return nil
}

func (t *AdjustCorrectionRate) Apply(base domain.InvestmentPlan) (domain.InvestmentPlan, error) {
	base.AnnualCorrectionRate = base.AnnualCorrectionRate.Add(t.Delta)
	return base, nil
}

// SetPolicyRate replaces the policy rate used for the fixed-income benchmark.
type SetPolicyRate struct {
	Rate decimal.Decimal
}

func (t *SetPolicyRate) Name() string { return "set_policy_rate" }

func (t *SetPolicyRate) Description() string {
	return fmt.Sprintf("Selic at %s%% a year", t.Rate.String())
}

func (t *SetPolicyRate) Validate(domain.InvestmentPlan) error {
	if t.Rate.IsNegative() {
		return NewTransformError(t.Name(), "validate", "policy rate must not be negative", nil)
	}
	return nil
}

func (t *SetPolicyRate) Apply(base domain.InvestmentPlan) (domain.InvestmentPlan, error) {
	base.PolicyRate = t.Rate
	return base, nil
}

// ShiftToEntry moves Percent of the launch price from the key delivery
// balance into the entry payment. A negative Percent moves it back.
type ShiftToEntry struct {
	Percent decimal.Decimal
}

func (t *ShiftToEntry) Name() string { return "shift_to_entry" }

func (t *ShiftToEntry) Description() string {
	return fmt.Sprintf("Move %s%% of the price from the keys to the entry", t.Percent.String())
}

func (t *ShiftToEntry) amount(base domain.InvestmentPlan) decimal.Decimal {
	return base.LaunchPrice.Mul(t.Percent).Div(hundred).Round(2)
}

func (t *ShiftToEntry) Validate(base domain.InvestmentPlan) error {
	amount := t.amount(base)
	if amount.GreaterThan(base.KeyDeliveryBalance) {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("key delivery balance %s is below %s", base.KeyDeliveryBalance.StringFixed(2), amount.StringFixed(2)), nil)
	}
	if base.EntryPayment.Add(amount).IsNegative() {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("entry payment %s is below %s", base.EntryPayment.StringFixed(2), amount.Neg().StringFixed(2)), nil)
	}
	return nil
}

func (t *ShiftToEntry) Apply(base domain.InvestmentPlan) (domain.InvestmentPlan, error) {
	amount := t.amount(base)
	base.EntryPayment = base.EntryPayment.Add(amount)
	base.KeyDeliveryBalance = base.KeyDeliveryBalance.Sub(amount)
	return base, nil
}

func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.String()
	}
	return d.String()
}
