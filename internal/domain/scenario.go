package domain

import (
	"github.com/shopspring/decimal"
)

// Phase describes where a sale month falls relative to key delivery.
type Phase string

const (
	PhaseConstruction Phase = "construction"
	PhaseDelivery     Phase = "delivery"
	PhasePostDelivery Phase = "post_delivery"
)

// ScenarioResult is the outcome of selling the unit at a given month.
// It is derived from an InvestmentPlan and never authoritative state.
type ScenarioResult struct {
	Month int    `yaml:"month" json:"month"`
	Label string `yaml:"label" json:"label"`
	Phase Phase  `yaml:"phase" json:"phase"`

	PropertyValue     decimal.Decimal `yaml:"property_value" json:"propertyValue"`
	TotalInvested     decimal.Decimal `yaml:"total_invested" json:"totalInvested"`
	CorrectedInvested decimal.Decimal `yaml:"corrected_invested" json:"correctedInvested"`
	Commission        decimal.Decimal `yaml:"commission" json:"commission"`
	SaleCosts         decimal.Decimal `yaml:"sale_costs" json:"saleCosts"`
	GrossProfit       decimal.Decimal `yaml:"gross_profit" json:"grossProfit"`
	TaxDue            decimal.Decimal `yaml:"tax_due" json:"taxDue"`
	NetProfit         decimal.Decimal `yaml:"net_profit" json:"netProfit"`

	ProfitabilityPercent decimal.Decimal `yaml:"profitability_percent" json:"profitabilityPercent"`
	AnnualizedPercent    decimal.Decimal `yaml:"annualized_percent" json:"annualizedPercent"`

	PolicyRateYield    decimal.Decimal `yaml:"policy_rate_yield" json:"policyRateYield"`
	InterbankRateYield decimal.Decimal `yaml:"interbank_rate_yield" json:"interbankRateYield"`
	TaxExemptYield     decimal.Decimal `yaml:"tax_exempt_yield" json:"taxExemptYield"`
}

// BeatsPolicyRate reports whether selling at this month nets more than the
// same capital would have earned at the policy rate.
func (s ScenarioResult) BeatsPolicyRate() bool {
	return s.NetProfit.GreaterThan(s.PolicyRateYield)
}

// ChartPoint is the reduced projection used for month-by-month charting.
type ChartPoint struct {
	Month           int             `yaml:"month" json:"month"`
	PropertyValue   decimal.Decimal `yaml:"property_value" json:"propertyValue"`
	TotalInvested   decimal.Decimal `yaml:"total_invested" json:"totalInvested"`
	NetProfit       decimal.Decimal `yaml:"net_profit" json:"netProfit"`
	PolicyRateYield decimal.Decimal `yaml:"policy_rate_yield" json:"policyRateYield"`
}

// SimulationSummary condenses a tabular series into headline figures.
type SimulationSummary struct {
	BestByNetProfit  *ScenarioResult `yaml:"best_by_net_profit,omitempty" json:"bestByNetProfit,omitempty"`
	BestByAnnualized *ScenarioResult `yaml:"best_by_annualized,omitempty" json:"bestByAnnualized,omitempty"`
	AtDelivery       *ScenarioResult `yaml:"at_delivery,omitempty" json:"atDelivery,omitempty"`
	BreakEvenMonth   int             `yaml:"break_even_month" json:"breakEvenMonth"`
	AcquisitionCosts decimal.Decimal `yaml:"acquisition_costs" json:"acquisitionCosts"`
	Recommendations  []string        `yaml:"recommendations" json:"recommendations"`
}

// SimulationReport bundles everything derived from one plan.
type SimulationReport struct {
	Name      string            `yaml:"name" json:"name"`
	Plan      InvestmentPlan    `yaml:"plan" json:"plan"`
	Rates     *ReferenceRates   `yaml:"rates,omitempty" json:"rates,omitempty"`
	Scenarios []ScenarioResult  `yaml:"scenarios" json:"scenarios"`
	Chart     []ChartPoint      `yaml:"chart,omitempty" json:"chart,omitempty"`
	Summary   SimulationSummary `yaml:"summary" json:"summary"`
}
