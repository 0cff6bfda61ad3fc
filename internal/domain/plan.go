package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CorrectionIndex identifies the monetary index used to correct installments
// paid during construction.
type CorrectionIndex string

const (
	CorrectionCUB    CorrectionIndex = "CUB"
	CorrectionINCC   CorrectionIndex = "INCC"
	CorrectionIPCA   CorrectionIndex = "IPCA"
	CorrectionManual CorrectionIndex = "manual"
)

// CorrectionIndexes lists the supported correction index kinds.
var CorrectionIndexes = []CorrectionIndex{CorrectionCUB, CorrectionINCC, CorrectionIPCA, CorrectionManual}

// ParseCorrectionIndex resolves a correction index name case-insensitively.
func ParseCorrectionIndex(s string) (CorrectionIndex, error) {
	name := strings.TrimSpace(s)
	for _, idx := range CorrectionIndexes {
		if strings.EqualFold(name, string(idx)) {
			return idx, nil
		}
	}
	return "", fmt.Errorf("unknown correction index %q (valid: CUB, INCC, IPCA, manual)", s)
}

// Valid reports whether the index is one of the supported kinds.
func (c CorrectionIndex) Valid() bool {
	_, err := ParseCorrectionIndex(string(c))
	return err == nil
}

// InvestmentPlan describes the purchase of a pre-construction unit under an
// installment plan. Percentages are plain numbers (13.25 means 13.25%).
// A plan is treated as immutable input by every calculation.
type InvestmentPlan struct {
	LaunchPrice  decimal.Decimal `yaml:"launch_price" json:"launchPrice"`
	EntryPayment decimal.Decimal `yaml:"entry_payment" json:"entryPayment"`

	MonthlyInstallments     int             `yaml:"monthly_installments" json:"monthlyInstallments"`
	MonthlyInstallmentValue decimal.Decimal `yaml:"monthly_installment_value" json:"monthlyInstallmentValue"`

	SemiannualInstallments     int             `yaml:"semiannual_installments" json:"semiannualInstallments"`
	SemiannualInstallmentValue decimal.Decimal `yaml:"semiannual_installment_value" json:"semiannualInstallmentValue"`

	AnnualInstallments     int             `yaml:"annual_installments" json:"annualInstallments"`
	AnnualInstallmentValue decimal.Decimal `yaml:"annual_installment_value" json:"annualInstallmentValue"`

	KeyDeliveryBalance     decimal.Decimal `yaml:"key_delivery_balance" json:"keyDeliveryBalance"`
	ConstructionTermMonths int             `yaml:"construction_term_months" json:"constructionTermMonths"`

	CorrectionIndex      CorrectionIndex `yaml:"correction_index" json:"correctionIndex"`
	AnnualCorrectionRate decimal.Decimal `yaml:"annual_correction_rate" json:"annualCorrectionRate"`

	// Post-delivery terms are carried for persistence; no calculation uses them.
	PostDeliveryIndex    string          `yaml:"post_delivery_index" json:"postDeliveryIndex"`
	PostDeliveryInterest decimal.Decimal `yaml:"post_delivery_interest" json:"postDeliveryInterest"`

	TransferTaxPercent     decimal.Decimal `yaml:"transfer_tax_percent" json:"transferTaxPercent"`
	RegistrationCost       decimal.Decimal `yaml:"registration_cost" json:"registrationCost"`
	SaleCommissionPercent  decimal.Decimal `yaml:"sale_commission_percent" json:"saleCommissionPercent"`
	AnnualAppreciationRate decimal.Decimal `yaml:"annual_appreciation_rate" json:"annualAppreciationRate"`

	PolicyRate    decimal.Decimal `yaml:"policy_rate" json:"policyRate"`
	InterbankRate decimal.Decimal `yaml:"interbank_rate" json:"interbankRate"`
	TaxExemptRate decimal.Decimal `yaml:"tax_exempt_rate" json:"taxExemptRate"`
}

// HorizonMonths is the last month evaluated by the scenario series:
// construction plus two years after delivery.
func (p InvestmentPlan) HorizonMonths() int {
	return p.ConstructionTermMonths + PostDeliveryHorizonMonths
}

// PostDeliveryHorizonMonths is how far past delivery the series extends.
const PostDeliveryHorizonMonths = 24
