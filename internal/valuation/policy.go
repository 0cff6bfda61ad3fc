package valuation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// WeightPolicy decides what happens to comparable weights outside the
// intended range before aggregation.
type WeightPolicy string

const (
	// PolicyPermissive uses weights exactly as given.
	PolicyPermissive WeightPolicy = "permissive"
	// PolicyClamp pulls weights into [MinWeight, MaxWeight].
	PolicyClamp WeightPolicy = "clamp"
	// PolicyStrict rejects comparables whose weight is out of range.
	PolicyStrict WeightPolicy = "strict"
)

// Intended weight range and the weight given to comparables entered without one.
var (
	MinWeight     = decimal.NewFromFloat(0.5)
	MaxWeight     = decimal.NewFromInt(1)
	DefaultWeight = decimal.NewFromFloat(0.9)
)

// ParseWeightPolicy resolves a policy name; empty means permissive.
func ParseWeightPolicy(s string) (WeightPolicy, error) {
	switch WeightPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyPermissive:
		return PolicyPermissive, nil
	case PolicyClamp:
		return PolicyClamp, nil
	case PolicyStrict:
		return PolicyStrict, nil
	}
	return "", fmt.Errorf("unknown weight policy %q (valid: permissive, clamp, strict)", s)
}

// InRange reports whether w lies within [MinWeight, MaxWeight].
func InRange(w decimal.Decimal) bool {
	return w.GreaterThanOrEqual(MinWeight) && w.LessThanOrEqual(MaxWeight)
}

// apply returns the weight the aggregation should use.
func (p WeightPolicy) apply(w decimal.Decimal) decimal.Decimal {
	if p != PolicyClamp {
		return w
	}
	return decimal.Max(MinWeight, decimal.Min(MaxWeight, w))
}
