package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Default reference rates used whenever live rates cannot be retrieved.
var (
	DefaultPolicyRate    = decimal.NewFromFloat(13.25)
	DefaultInflationRate = decimal.NewFromFloat(4.5)
	DefaultInterbankRate = decimal.NewFromFloat(13.15)
)

// ReferenceRates are the current market rates, as annual percentages.
type ReferenceRates struct {
	PolicyRate    decimal.Decimal `yaml:"policy_rate" json:"policyRate"`
	InflationRate decimal.Decimal `yaml:"inflation_rate" json:"inflationRate"`
	InterbankRate decimal.Decimal `yaml:"interbank_rate" json:"interbankRate"`

	UpdatedAt *time.Time `yaml:"updated_at,omitempty" json:"updatedAt"`
	Fallback  bool       `yaml:"fallback" json:"fallback"`
	// Failed names the series that could not be retrieved.
	Failed []string `yaml:"failed,omitempty" json:"failed,omitempty"`
}

// DefaultReferenceRates returns the documented fallback rates.
func DefaultReferenceRates() ReferenceRates {
	return ReferenceRates{
		PolicyRate:    DefaultPolicyRate,
		InflationRate: DefaultInflationRate,
		InterbankRate: DefaultInterbankRate,
		Fallback:      true,
	}
}

// ApplyTo copies the rates into a plan: policy and interbank rates feed the
// fixed-income comparison and inflation becomes the correction rate. The
// tax-exempt rate is left as the caller set it.
func (r ReferenceRates) ApplyTo(plan InvestmentPlan) InvestmentPlan {
	plan.PolicyRate = r.PolicyRate
	plan.InterbankRate = r.InterbankRate
	plan.AnnualCorrectionRate = r.InflationRate
	return plan
}
