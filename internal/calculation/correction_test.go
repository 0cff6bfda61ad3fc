package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElapsedCounts(t *testing.T) {
	plan := samplePlan()

	tests := []struct {
		month    int
		expected PaidCounts
	}{
		{0, PaidCounts{}},
		{5, PaidCounts{Monthly: 5}},
		{6, PaidCounts{Monthly: 6, Semiannual: 1}},
		{12, PaidCounts{Monthly: 12, Semiannual: 2, Annual: 1}},
		{23, PaidCounts{Monthly: 23, Semiannual: 3, Annual: 1}},
		{24, PaidCounts{Monthly: 24, Semiannual: 4, Annual: 2, KeyDelivery: true}},
		{48, PaidCounts{Monthly: 24, Semiannual: 4, Annual: 2, KeyDelivery: true}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ElapsedCounts(plan, tt.month), "month %d", tt.month)
	}
}

func TestElapsedPayments_Schedule(t *testing.T) {
	plan := samplePlan()

	payments := ElapsedPayments(plan, 24)
	require.Len(t, payments, 1+24+4+2+1)

	assert.Equal(t, Payment{Month: 0, Amount: plan.EntryPayment, Kind: PaymentEntry}, payments[0])

	var semiannualMonths, annualMonths []int
	for _, p := range payments {
		switch p.Kind {
		case PaymentSemiannual:
			semiannualMonths = append(semiannualMonths, p.Month)
		case PaymentAnnual:
			annualMonths = append(annualMonths, p.Month)
		case PaymentKeyDelivery:
			assert.Equal(t, 24, p.Month)
		}
	}
	assert.Equal(t, []int{6, 12, 18, 24}, semiannualMonths)
	assert.Equal(t, []int{12, 24}, annualMonths)
}

func TestNominalTotal(t *testing.T) {
	plan := samplePlan()

	assertDecimalEqual(t, "60000", NominalTotal(ElapsedPayments(plan, 0)))
	assertDecimalEqual(t, "119000", NominalTotal(ElapsedPayments(plan, 12)))
	assertDecimalEqual(t, "550000", NominalTotal(ElapsedPayments(plan, 24)))
	assertDecimalEqual(t, "550000", NominalTotal(ElapsedPayments(plan, 48)))
}

func TestMonthlyRate(t *testing.T) {
	assertDecimalEqual(t, "0.01", MonthlyRate(dec("12")))
	assertDecimalEqual(t, "0", MonthlyRate(decimal.Zero))
}

func TestIndexCorrectionEngine_Correct(t *testing.T) {
	engine := NewIndexCorrectionEngine()

	t.Run("single payment compounds monthly", func(t *testing.T) {
		payments := []Payment{{Month: 0, Amount: dec("1000"), Kind: PaymentEntry}}
		corrected := engine.Correct(payments, 12, dec("12"))
		assert.InDelta(t, 1126.825030, corrected.InexactFloat64(), 0.0001)
	})

	t.Run("zero rate returns nominal", func(t *testing.T) {
		payments := ElapsedPayments(samplePlan(), 24)
		assertDecimalEqual(t, NominalTotal(payments).String(), engine.Correct(payments, 24, decimal.Zero))
	})

	t.Run("payment at evaluation month is not compounded", func(t *testing.T) {
		payments := []Payment{{Month: 10, Amount: dec("500"), Kind: PaymentMonthly}}
		assertDecimalEqual(t, "500", engine.Correct(payments, 10, dec("6")))
	})

	t.Run("future payments are ignored", func(t *testing.T) {
		payments := []Payment{
			{Month: 0, Amount: dec("1000"), Kind: PaymentEntry},
			{Month: 7, Amount: dec("1000"), Kind: PaymentMonthly},
		}
		assertDecimalEqual(t, "1000", engine.Correct(payments, 6, decimal.Zero))
	})

	t.Run("positive rate never lowers the total", func(t *testing.T) {
		payments := ElapsedPayments(samplePlan(), 20)
		corrected := engine.Correct(payments, 20, dec("6"))
		assert.True(t, corrected.GreaterThan(NominalTotal(payments)))
	})
}
