package calculation

import (
	"math"

	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// PaymentKind tags a payment event with the part of the plan it settles.
type PaymentKind string

const (
	PaymentEntry       PaymentKind = "entry"
	PaymentMonthly     PaymentKind = "monthly"
	PaymentSemiannual  PaymentKind = "semiannual"
	PaymentAnnual      PaymentKind = "annual"
	PaymentKeyDelivery PaymentKind = "key_delivery"
)

// Payment is a single historical outflow, paid at Month.
type Payment struct {
	Month  int
	Amount decimal.Decimal
	Kind   PaymentKind
}

// PaidCounts is how much of the installment plan has elapsed by a month.
type PaidCounts struct {
	Monthly     int
	Semiannual  int
	Annual      int
	KeyDelivery bool
}

// ElapsedCounts returns the installments paid up to and including month.
func ElapsedCounts(plan domain.InvestmentPlan, month int) PaidCounts {
	return PaidCounts{
		Monthly:     min(month, plan.MonthlyInstallments),
		Semiannual:  min(month/6, plan.SemiannualInstallments),
		Annual:      min(month/12, plan.AnnualInstallments),
		KeyDelivery: month >= plan.ConstructionTermMonths,
	}
}

// ElapsedPayments lists every payment made up to and including month, in
// plan order: entry, monthly, semiannual, annual, key delivery.
func ElapsedPayments(plan domain.InvestmentPlan, month int) []Payment {
	counts := ElapsedCounts(plan, month)
	payments := make([]Payment, 0, 2+counts.Monthly+counts.Semiannual+counts.Annual)

	payments = append(payments, Payment{Month: 0, Amount: plan.EntryPayment, Kind: PaymentEntry})
	for m := 1; m <= counts.Monthly; m++ {
		payments = append(payments, Payment{Month: m, Amount: plan.MonthlyInstallmentValue, Kind: PaymentMonthly})
	}
	for s := 1; s <= counts.Semiannual; s++ {
		payments = append(payments, Payment{Month: s * 6, Amount: plan.SemiannualInstallmentValue, Kind: PaymentSemiannual})
	}
	for a := 1; a <= counts.Annual; a++ {
		payments = append(payments, Payment{Month: a * 12, Amount: plan.AnnualInstallmentValue, Kind: PaymentAnnual})
	}
	if counts.KeyDelivery {
		payments = append(payments, Payment{Month: plan.ConstructionTermMonths, Amount: plan.KeyDeliveryBalance, Kind: PaymentKeyDelivery})
	}

	return payments
}

// NominalTotal sums payment amounts without correction.
func NominalTotal(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// IndexCorrectionEngine compounds past payments forward to an evaluation
// month at the monthly equivalent of an annual correction rate.
type IndexCorrectionEngine struct{}

// NewIndexCorrectionEngine creates a new correction engine
func NewIndexCorrectionEngine() *IndexCorrectionEngine {
	return &IndexCorrectionEngine{}
}

// MonthlyRate converts an annual percentage into the simple monthly
// equivalent used for correction: annual/100/12.
func MonthlyRate(annualPercent decimal.Decimal) decimal.Decimal {
	return annualPercent.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(12))
}

// Correct returns the corrected value of payments at month. Payments made
// after month are ignored.
func (e *IndexCorrectionEngine) Correct(payments []Payment, month int, annualPercent decimal.Decimal) decimal.Decimal {
	monthly := MonthlyRate(annualPercent)
	total := decimal.Zero
	for _, p := range payments {
		if p.Month > month {
			continue
		}
		total = total.Add(p.Amount.Mul(compoundFactor(monthly, float64(month-p.Month))))
	}
	return total
}

// compoundFactor returns (1+rate)^periods. Fractional exponents are not
// supported by decimal.Pow, so the factor is computed in float64.
func compoundFactor(rate decimal.Decimal, periods float64) decimal.Decimal {
	if periods == 0 {
		return decimal.NewFromInt(1)
	}
	return fromFloat(math.Pow(1+rate.InexactFloat64(), periods))
}

// fromFloat converts a float result back into decimal, mapping NaN and
// infinities to zero since decimal.NewFromFloat panics on them.
func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}
