package calculation

import (
	"fmt"
	"math"

	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DaysPerMonth is the holding-period convention for fixed-income tax.
const DaysPerMonth = 30

// ScenarioEvaluator computes the outcome of selling at a single month.
type ScenarioEvaluator struct {
	CapitalGains *CapitalGainsTaxCalculator
	FixedIncome  *FixedIncomeTaxCalculator
	Correction   *IndexCorrectionEngine
}

// NewScenarioEvaluator creates an evaluator with the default tax schedules
func NewScenarioEvaluator() *ScenarioEvaluator {
	return &ScenarioEvaluator{
		CapitalGains: NewCapitalGainsTaxCalculator(),
		FixedIncome:  NewFixedIncomeTaxCalculator(),
		Correction:   NewIndexCorrectionEngine(),
	}
}

// PropertyValueAt returns launchPrice * (1 + appreciation/100)^(month/12).
func PropertyValueAt(plan domain.InvestmentPlan, month int) decimal.Decimal {
	rate := plan.AnnualAppreciationRate.Div(hundred)
	return plan.LaunchPrice.Mul(compoundFactor(rate, float64(month)/12))
}

// PhaseAt classifies month relative to the construction term.
func PhaseAt(plan domain.InvestmentPlan, month int) domain.Phase {
	switch {
	case month < plan.ConstructionTermMonths:
		return domain.PhaseConstruction
	case month == plan.ConstructionTermMonths:
		return domain.PhaseDelivery
	default:
		return domain.PhasePostDelivery
	}
}

// LabelFor returns the human label of a sale month.
func LabelFor(plan domain.InvestmentPlan, month int) string {
	switch PhaseAt(plan, month) {
	case domain.PhaseConstruction:
		return fmt.Sprintf("Month %d (under construction)", month)
	case domain.PhaseDelivery:
		return "At delivery"
	default:
		return fmt.Sprintf("+%dm after delivery", month-plan.ConstructionTermMonths)
	}
}

// Evaluate computes the scenario for a sale at month with the default label.
func (se *ScenarioEvaluator) Evaluate(plan domain.InvestmentPlan, month int) domain.ScenarioResult {
	return se.EvaluateWithLabel(plan, month, LabelFor(plan, month))
}

// EvaluateWithLabel computes the scenario for a sale at month.
//
// Tax is levied on the gain over the index-corrected amount invested, while
// net profit is measured against the nominal amount invested. Every figure
// is kept at full precision until the final rounding.
func (se *ScenarioEvaluator) EvaluateWithLabel(plan domain.InvestmentPlan, month int, label string) domain.ScenarioResult {
	propertyValue := PropertyValueAt(plan, month)

	payments := ElapsedPayments(plan, month)
	totalInvested := NominalTotal(payments)
	corrected := se.Correction.Correct(payments, month, plan.AnnualCorrectionRate)

	commission := propertyValue.Mul(plan.SaleCommissionPercent).Div(hundred)
	capitalGain := propertyValue.Sub(corrected).Sub(commission)
	tax := se.CapitalGains.CalculateTax(capitalGain)
	saleCosts := commission.Add(tax)

	grossProfit := propertyValue.Sub(totalInvested)
	netProfit := propertyValue.Sub(totalInvested).Sub(saleCosts)

	profitability := decimal.Zero
	if totalInvested.IsPositive() {
		profitability = netProfit.Div(totalInvested).Mul(hundred)
	}
	annualized := annualizedReturn(netProfit, totalInvested, month)

	days := month * DaysPerMonth
	policyYield := se.netFixedIncomeYield(totalInvested, plan.PolicyRate, month, days, true)
	interbankYield := se.netFixedIncomeYield(totalInvested, plan.InterbankRate, month, days, true)
	exemptYield := se.netFixedIncomeYield(totalInvested, plan.TaxExemptRate, month, days, false)

	return domain.ScenarioResult{
		Month:                month,
		Label:                label,
		Phase:                PhaseAt(plan, month),
		PropertyValue:        roundMoney(propertyValue),
		TotalInvested:        roundMoney(totalInvested),
		CorrectedInvested:    roundMoney(corrected),
		Commission:           roundMoney(commission),
		SaleCosts:            roundMoney(saleCosts),
		GrossProfit:          roundMoney(grossProfit),
		TaxDue:               roundMoney(tax),
		NetProfit:            roundMoney(netProfit),
		ProfitabilityPercent: roundPercent(profitability),
		AnnualizedPercent:    roundPercent(annualized),
		PolicyRateYield:      roundMoney(policyYield),
		InterbankRateYield:   roundMoney(interbankYield),
		TaxExemptYield:       roundMoney(exemptYield),
	}
}

// GrossFixedIncomeYield compounds principal monthly at annualPercent/100/12
// for months and returns the interest earned.
func GrossFixedIncomeYield(principal, annualPercent decimal.Decimal, months int) decimal.Decimal {
	factor := compoundFactor(MonthlyRate(annualPercent), float64(months))
	return principal.Mul(factor.Sub(decimal.NewFromInt(1)))
}

func (se *ScenarioEvaluator) netFixedIncomeYield(principal, annualPercent decimal.Decimal, months, days int, taxable bool) decimal.Decimal {
	gross := GrossFixedIncomeYield(principal, annualPercent, months)
	if !taxable {
		return gross
	}
	return gross.Sub(se.FixedIncome.CalculateTax(gross, days))
}

// annualizedReturn returns ((1 + net/invested)^(12/month) - 1) * 100.
// A total loss or worse reports -100.
func annualizedReturn(netProfit, invested decimal.Decimal, month int) decimal.Decimal {
	if month == 0 || !invested.IsPositive() {
		return decimal.Zero
	}
	base := decimal.NewFromInt(1).Add(netProfit.Div(invested))
	if !base.IsPositive() {
		return hundred.Neg()
	}
	years := float64(month) / 12
	growth := math.Pow(base.InexactFloat64(), 1/years)
	return fromFloat(growth).Sub(decimal.NewFromInt(1)).Mul(hundred)
}

func roundMoney(d decimal.Decimal) decimal.Decimal { return roundHalfUp(d, 0) }

func roundPercent(d decimal.Decimal) decimal.Decimal { return roundHalfUp(d, 2) }

var half = decimal.New(5, -1)

// roundHalfUp rounds to places with ties going toward positive infinity, so
// -2.5 becomes -2. decimal.Round sends ties away from zero.
func roundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Shift(places).Add(half).Floor().Shift(-places)
}
