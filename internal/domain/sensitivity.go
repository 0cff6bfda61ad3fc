package domain

import (
	"github.com/shopspring/decimal"
)

// SensitivityParameter describes a plan parameter to sweep
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	Description string          `yaml:"description" json:"description"`
}

// SensitivityPoint is the scenario outcome for one swept value
type SensitivityPoint struct {
	Value             decimal.Decimal `json:"value"`
	NetProfit         decimal.Decimal `json:"netProfit"`
	AnnualizedPercent decimal.Decimal `json:"annualizedPercent"`
	NetProfitDelta    decimal.Decimal `json:"netProfitDelta"` // vs. the unmodified plan
	BeatsPolicyRate   bool            `json:"beatsPolicyRate"`
}

// SensitivityAnalysis is a complete single-parameter sweep
type SensitivityAnalysis struct {
	Parameter SensitivityParameter `json:"parameter"`
	Month     int                  `json:"month"`
	BaseValue decimal.Decimal      `json:"baseValue"`
	Base      ScenarioResult       `json:"base"`
	Points    []SensitivityPoint   `json:"points"`
	RiskLevel string               `json:"riskLevel"` // "LOW", "MEDIUM", "HIGH"
}

// Sweepable parameter names
const (
	ParamAppreciation   = "appreciation"
	ParamCorrectionRate = "correction_rate"
	ParamCommission     = "commission"
	ParamPolicyRate     = "policy_rate"
)

// Common sensitivity parameters
var (
	AppreciationParam = SensitivityParameter{
		Name:        ParamAppreciation,
		MinValue:    decimal.NewFromInt(0),
		MaxValue:    decimal.NewFromInt(10),
		Steps:       5,
		Description: "Estimated annual appreciation of the property",
	}

	CorrectionRateParam = SensitivityParameter{
		Name:        ParamCorrectionRate,
		MinValue:    decimal.NewFromInt(2),
		MaxValue:    decimal.NewFromInt(10),
		Steps:       5,
		Description: "Annual rate of the installment correction index",
	}

	CommissionParam = SensitivityParameter{
		Name:        ParamCommission,
		MinValue:    decimal.NewFromInt(4),
		MaxValue:    decimal.NewFromInt(8),
		Steps:       5,
		Description: "Broker commission on sale",
	}

	PolicyRateParam = SensitivityParameter{
		Name:        ParamPolicyRate,
		MinValue:    decimal.NewFromInt(8),
		MaxValue:    decimal.NewFromInt(16),
		Steps:       5,
		Description: "Policy rate used for the fixed-income comparison",
	}
)

// GetCommonParameters returns the sweepable parameters with default ranges
func GetCommonParameters() []SensitivityParameter {
	return []SensitivityParameter{
		AppreciationParam,
		CorrectionRateParam,
		CommissionParam,
		PolicyRateParam,
	}
}
