package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Provenance records where a comparable listing came from.
type Provenance string

const (
	ProvenanceAI     Provenance = "ia"
	ProvenanceManual Provenance = "manual"
)

// AmenityLevel describes the leisure infrastructure of a building.
type AmenityLevel string

const (
	AmenityNone     AmenityLevel = "sem"
	AmenityBasic    AmenityLevel = "basico"
	AmenityComplete AmenityLevel = "completo"
)

// ParseAmenityLevel maps free-form descriptors onto an AmenityLevel.
// English aliases are accepted alongside the stored Portuguese values.
func ParseAmenityLevel(s string) (AmenityLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sem", "none":
		return AmenityNone, nil
	case "basico", "básico", "basic":
		return AmenityBasic, nil
	case "", "completo", "complete", "full":
		return AmenityComplete, nil
	}
	return "", fmt.Errorf("unknown amenity level %q (valid: sem, basico, completo)", s)
}

// Comparable is a market listing used to value a subject property.
type Comparable struct {
	Code          string          `yaml:"code" json:"code"`
	Project       string          `yaml:"project" json:"project"`
	TotalPrice    decimal.Decimal `yaml:"total_price" json:"totalPrice"`
	PrivateArea   decimal.Decimal `yaml:"private_area" json:"privateArea"`
	Bedrooms      int             `yaml:"bedrooms" json:"bedrooms"`
	Suites        int             `yaml:"suites" json:"suites"`
	Bathrooms     int             `yaml:"bathrooms" json:"bathrooms"`
	ParkingSpaces int             `yaml:"parking_spaces" json:"parkingSpaces"`
	Amenities     string          `yaml:"amenities" json:"amenities"`
	Furnishing    string          `yaml:"furnishing" json:"furnishing"`
	FloorPosition string          `yaml:"floor_position" json:"floorPosition"`
	Condition     string          `yaml:"condition" json:"condition"`
	LastUpdated   string          `yaml:"last_updated" json:"lastUpdated"`
	SourceURL     string          `yaml:"source_url" json:"sourceUrl"`
	Weight        decimal.Decimal `yaml:"weight" json:"weight"`
	Provenance    Provenance      `yaml:"provenance" json:"provenance"`
	Active        bool            `yaml:"active" json:"active"`
	Order         int             `yaml:"order" json:"order"`
}

// PricePerArea is the listing price divided by its private area, or zero
// when the area is zero.
func (c Comparable) PricePerArea() decimal.Decimal {
	if c.PrivateArea.IsZero() {
		return decimal.Zero
	}
	return c.TotalPrice.Div(c.PrivateArea)
}

// SubjectProperty carries the attributes of the appraised unit that affect
// the adjustment factor.
type SubjectProperty struct {
	City         string          `yaml:"city" json:"city"`
	Neighborhood string          `yaml:"neighborhood" json:"neighborhood"`
	Kind         string          `yaml:"kind" json:"kind"`
	PrivateArea  decimal.Decimal `yaml:"private_area" json:"privateArea"`
	BuildingAge  int             `yaml:"building_age" json:"buildingAge"`
	Amenities    AmenityLevel    `yaml:"amenities" json:"amenities"`
}

// ValuationResult holds the reference values derived from comparables.
// WeightedPricePerArea is kept at full precision; the three values are
// whole currency units.
type ValuationResult struct {
	WeightedPricePerArea decimal.Decimal `yaml:"weighted_price_per_area" json:"weightedPricePerArea"`
	CommercialValue      decimal.Decimal `yaml:"commercial_value" json:"commercialValue"`
	AppraisedValue       decimal.Decimal `yaml:"appraised_value" json:"appraisedValue"`
	MaximumValue         decimal.Decimal `yaml:"maximum_value" json:"maximumValue"`
	AdjustmentFactor     decimal.Decimal `yaml:"adjustment_factor" json:"adjustmentFactor"`
	ActiveCount          int             `yaml:"active_count" json:"activeCount"`
}

// ValuationReport bundles a valuation with the inputs that produced it.
type ValuationReport struct {
	Subject     SubjectProperty `yaml:"subject" json:"subject"`
	Comparables []Comparable    `yaml:"comparables" json:"comparables"`
	Result      ValuationResult `yaml:"result" json:"result"`
	Policy      string          `yaml:"weight_policy" json:"weightPolicy"`
}
