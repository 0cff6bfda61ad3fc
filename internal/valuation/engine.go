package valuation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrWeightOutOfRange is returned under PolicyStrict.
var ErrWeightOutOfRange = errors.New("comparable weight out of range")

// Adjustment factors applied to the weighted average price to derive the
// commercial value.
var (
	StandardAdjustment   = decimal.NewFromFloat(0.90)
	DiscountedAdjustment = decimal.NewFromFloat(0.85)
	MaximumMarkup        = decimal.NewFromFloat(1.05)
)

// AgeThresholdYears is the building age above which the discounted
// adjustment applies.
const AgeThresholdYears = 20

// ComparableWeightingEngine derives reference values for a subject property
// from a weighted set of comparables. It holds no state besides its policy
// and may be shared between goroutines.
type ComparableWeightingEngine struct {
	Policy WeightPolicy
}

// NewComparableWeightingEngine creates an engine with the given policy.
// An empty policy is permissive.
func NewComparableWeightingEngine(policy WeightPolicy) *ComparableWeightingEngine {
	if policy == "" {
		policy = PolicyPermissive
	}
	return &ComparableWeightingEngine{Policy: policy}
}

// Validate checks active comparables against the engine's policy. Only the
// strict policy can fail.
func (e *ComparableWeightingEngine) Validate(comparables []domain.Comparable) error {
	if e.Policy != PolicyStrict {
		return nil
	}
	var bad []string
	for i, c := range comparables {
		if c.Active && !InRange(c.Weight) {
			bad = append(bad, fmt.Sprintf("#%d %s (%s)", i+1, c.Code, c.Weight))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w [%s, %s]: %s", ErrWeightOutOfRange, MinWeight, MaxWeight, strings.Join(bad, ", "))
	}
	return nil
}

// Valuate computes the valuation of subject from comparables. It fails only
// when the strict policy rejects a weight.
func (e *ComparableWeightingEngine) Valuate(comparables []domain.Comparable, subject domain.SubjectProperty) (domain.ValuationResult, error) {
	if err := e.Validate(comparables); err != nil {
		return domain.ValuationResult{}, err
	}

	active := ActiveComparables(comparables)
	if len(active) == 0 {
		return domain.ValuationResult{
			WeightedPricePerArea: decimal.Zero,
			CommercialValue:      decimal.Zero,
			AppraisedValue:       decimal.Zero,
			MaximumValue:         decimal.Zero,
			AdjustmentFactor:     StandardAdjustment,
		}, nil
	}

	for i := range active {
		active[i].Weight = e.Policy.apply(active[i].Weight)
	}

	factor := AdjustmentFactor(subject)
	avgPrice := WeightedAverage(active, func(c domain.Comparable) decimal.Decimal { return c.TotalPrice })

	return domain.ValuationResult{
		WeightedPricePerArea: WeightedAverage(active, domain.Comparable.PricePerArea),
		CommercialValue:      avgPrice.Mul(factor).Round(0),
		AppraisedValue:       avgPrice.Round(0),
		MaximumValue:         avgPrice.Mul(MaximumMarkup).Round(0),
		AdjustmentFactor:     factor,
		ActiveCount:          len(active),
	}, nil
}

// ActiveComparables returns a copy of the comparables flagged active, in
// their original order.
func ActiveComparables(comparables []domain.Comparable) []domain.Comparable {
	active := make([]domain.Comparable, 0, len(comparables))
	for _, c := range comparables {
		if c.Active {
			active = append(active, c)
		}
	}
	return active
}

// AdjustmentFactor depends only on building age and amenity level.
func AdjustmentFactor(subject domain.SubjectProperty) decimal.Decimal {
	if subject.BuildingAge > AgeThresholdYears || subject.Amenities == domain.AmenityNone {
		return DiscountedAdjustment
	}
	return StandardAdjustment
}

// WeightedAverage returns Σ(value×weight)/Σ(weight), or zero when the
// weights sum to zero.
func WeightedAverage(comparables []domain.Comparable, value func(domain.Comparable) decimal.Decimal) decimal.Decimal {
	sum, weights := decimal.Zero, decimal.Zero
	for _, c := range comparables {
		sum = sum.Add(value(c).Mul(c.Weight))
		weights = weights.Add(c.Weight)
	}
	if weights.IsZero() {
		return decimal.Zero
	}
	return sum.Div(weights)
}

// Report valuates subject and bundles the result with its inputs and the
// policy that produced it.
func (e *ComparableWeightingEngine) Report(comparables []domain.Comparable, subject domain.SubjectProperty) (*domain.ValuationReport, error) {
	result, err := e.Valuate(comparables, subject)
	if err != nil {
		return nil, err
	}
	return &domain.ValuationReport{
		Subject:     subject,
		Comparables: comparables,
		Result:      result,
		Policy:      string(e.Policy),
	}, nil
}
