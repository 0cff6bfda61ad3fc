package compare

import (
	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// entryOnlyPlan has a single entry payment and a 36-month construction term.
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

func sampleComparisonSet() *ComparisonSet {
	return &ComparisonSet{
		BasePlanName: "Tower A",
		BaseResult: &ComparisonResult{
			PlanName:       "Tower A",
			BestNetProfit:  dec("150000"),
			BestMonth:      48,
			BestAnnualized: dec("18.5"),
			BreakEvenMonth: 12,
			TotalInvested:  dec("600000"),
		},
		AlternativeResults: []ComparisonResult{
			{
				PlanName:               "Tower B",
				BestNetProfit:          dec("1250000"),
				BestMonth:              54,
				BestAnnualized:         dec("21.25"),
				BreakEvenMonth:         6,
				TotalInvested:          dec("700000"),
				NetProfitDiffFromBase:  dec("1100000"),
				NetProfitPctFromBase:   dec("733.33"),
				AnnualizedDiffFromBase: dec("2.75"),
			},
		},
		Recommendations: []string{"Best Net Profit: Tower B nets R$ 1100000 more than Tower A"},
	}
}
