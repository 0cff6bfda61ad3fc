package calculation

import (
	"fmt"
	"testing"

	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimalEqual(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	msg := fmt.Sprintf("expected %s, got %s", expected, actual.String())
	if len(msgAndArgs) > 0 {
		if format, ok := msgAndArgs[0].(string); ok {
			msg += " (" + fmt.Sprintf(format, msgAndArgs[1:]...) + ")"
		}
	}
	assert.True(t, dec(expected).Equal(actual), msg)
}

// samplePlan is a typical 24-month pre-construction purchase.
func samplePlan() domain.InvestmentPlan {
	return domain.InvestmentPlan{
		LaunchPrice:                dec("600000"),
		EntryPayment:               dec("60000"),
		MonthlyInstallments:        24,
		MonthlyInstallmentValue:    dec("2000"),
		SemiannualInstallments:     4,
		SemiannualInstallmentValue: dec("10000"),
		AnnualInstallments:         2,
		AnnualInstallmentValue:     dec("15000"),
		KeyDeliveryBalance:         dec("372000"),
		ConstructionTermMonths:     24,
		CorrectionIndex:            domain.CorrectionINCC,
		AnnualCorrectionRate:       dec("6"),
		PostDeliveryIndex:          "IPCA",
		TransferTaxPercent:         dec("2"),
		RegistrationCost:           dec("3000"),
		SaleCommissionPercent:      dec("6"),
		AnnualAppreciationRate:     dec("8"),
		PolicyRate:                 dec("13.25"),
		InterbankRate:              dec("13.15"),
		TaxExemptRate:              dec("12"),
	}
}

// entryOnlyPlan has a single entry payment and nothing else to pay.
func entryOnlyPlan() domain.InvestmentPlan {
	return domain.InvestmentPlan{
		LaunchPrice:            dec("500000"),
		EntryPayment:           dec("50000"),
		ConstructionTermMonths: 36,
		CorrectionIndex:        domain.CorrectionManual,
		SaleCommissionPercent:  dec("6"),
		AnnualAppreciationRate: dec("5"),
		PolicyRate:             dec("12"),
		InterbankRate:          dec("12"),
		TaxExemptRate:          dec("12"),
	}
}
