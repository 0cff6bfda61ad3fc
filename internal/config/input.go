package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/pharosnegocios/imobcalc/internal/valuation"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Validation error classes.
var (
	ErrInvalidPlan      = errors.New("invalid investment plan")
	ErrInvalidValuation = errors.New("invalid valuation input")
)

// ValidationError lists every problem found in a document.
type ValidationError struct {
	Kind     error
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error { return e.Kind }

// SimulationInput is a simulation document.
type SimulationInput struct {
	Name string                `yaml:"name" json:"name"`
	Plan domain.InvestmentPlan `yaml:"plan" json:"plan"`
}

// ValuationInput is a valuation document.
type ValuationInput struct {
	Name         string                 `yaml:"name" json:"name"`
	Subject      domain.SubjectProperty `yaml:"subject" json:"subject"`
	Comparables  []domain.Comparable    `yaml:"comparables" json:"comparables"`
	WeightPolicy string                 `yaml:"weight_policy" json:"weightPolicy"`
}

// InputParser handles parsing of input documents
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadSimulation loads and validates a simulation document from a YAML or
// JSON file.
func (ip *InputParser) LoadSimulation(filename string) (*SimulationInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseSimulation(data)
}

// ParseSimulation parses and validates a simulation document.
func (ip *InputParser) ParseSimulation(data []byte) (*SimulationInput, error) {
	var input SimulationInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	plan, err := ip.NormalizePlan(input.Plan)
	if err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}
	input.Plan = plan
	return &input, nil
}

// NormalizePlan canonicalizes the correction index (IPCA when empty) and
// validates the plan.
func (ip *InputParser) NormalizePlan(plan domain.InvestmentPlan) (domain.InvestmentPlan, error) {
	if plan.CorrectionIndex == "" {
		plan.CorrectionIndex = domain.CorrectionIPCA
	} else if idx, err := domain.ParseCorrectionIndex(string(plan.CorrectionIndex)); err == nil {
		plan.CorrectionIndex = idx
	}
	if err := ip.ValidatePlan(plan); err != nil {
		return plan, err
	}
	return plan, nil
}

// ValidatePlan checks every field of plan and reports all problems at once.
func (ip *InputParser) ValidatePlan(plan domain.InvestmentPlan) error {
	var problems []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}
	nonNegative := func(name string, d decimal.Decimal) {
		check(!d.IsNegative(), "%s must not be negative", name)
	}

	check(plan.LaunchPrice.IsPositive(), "launch price must be positive")
	nonNegative("entry payment", plan.EntryPayment)
	nonNegative("monthly installment value", plan.MonthlyInstallmentValue)
	nonNegative("semiannual installment value", plan.SemiannualInstallmentValue)
	nonNegative("annual installment value", plan.AnnualInstallmentValue)
	nonNegative("key delivery balance", plan.KeyDeliveryBalance)
	nonNegative("registration cost", plan.RegistrationCost)

	check(plan.MonthlyInstallments >= 0, "monthly installments must not be negative")
	check(plan.SemiannualInstallments >= 0, "semiannual installments must not be negative")
	check(plan.AnnualInstallments >= 0, "annual installments must not be negative")
	check(plan.ConstructionTermMonths >= 1, "construction term must be at least 1 month")

	check(plan.CorrectionIndex.Valid(), "unknown correction index %q", plan.CorrectionIndex)
	nonNegative("correction rate", plan.AnnualCorrectionRate)
	nonNegative("post-delivery interest", plan.PostDeliveryInterest)

	hundred := decimal.NewFromInt(100)
	check(!plan.TransferTaxPercent.IsNegative() && plan.TransferTaxPercent.LessThanOrEqual(hundred),
		"transfer tax must be between 0 and 100")
	check(!plan.SaleCommissionPercent.IsNegative() && plan.SaleCommissionPercent.LessThanOrEqual(hundred),
		"sale commission must be between 0 and 100")
	check(plan.AnnualAppreciationRate.GreaterThanOrEqual(hundred.Neg()),
		"appreciation must not be below -100")

	nonNegative("policy rate", plan.PolicyRate)
	nonNegative("interbank rate", plan.InterbankRate)
	nonNegative("tax-exempt rate", plan.TaxExemptRate)

	if len(problems) > 0 {
		return &ValidationError{Kind: ErrInvalidPlan, Problems: problems}
	}
	return nil
}

// LoadValuation loads and validates a valuation document from a YAML or
// JSON file.
func (ip *InputParser) LoadValuation(filename string) (*ValuationInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseValuation(data)
}

// ParseValuation parses a valuation document. Comparables that omit them
// are made active, manual, weighted 0.90 and ordered by position. A null or
// empty active/weight counts as omitted.
func (ip *InputParser) ParseValuation(data []byte) (*ValuationInput, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	given := stripBlankDefaults(&doc)

	var input ValuationInput
	if doc.Kind != 0 {
		if err := doc.Decode(&input); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	for i := range input.Comparables {
		c := &input.Comparables[i]
		var keys map[string]bool
		if i < len(given) {
			keys = given[i]
		}
		if !keys["active"] {
			c.Active = true
		}
		if !keys["weight"] {
			c.Weight = valuation.DefaultWeight
		}
		if c.Provenance == "" {
			c.Provenance = domain.ProvenanceManual
		}
		if c.Order == 0 {
			c.Order = i + 1
		}
		if c.Code == "" {
			c.Code = fmt.Sprintf("COMP-%03d", i+1)
		}
	}

	if err := ip.ValidateValuation(&input); err != nil {
		return nil, fmt.Errorf("valuation validation failed: %w", err)
	}
	return &input, nil
}

// ValidateValuation checks the subject and comparables, canonicalizing the
// amenity level and weight policy in place. An empty policy is left empty
// so that the caller's default applies.
func (ip *InputParser) ValidateValuation(input *ValuationInput) error {
	var problems []string

	level, err := domain.ParseAmenityLevel(string(input.Subject.Amenities))
	if err != nil {
		problems = append(problems, err.Error())
	} else {
		input.Subject.Amenities = level
	}
	if input.Subject.BuildingAge < 0 {
		problems = append(problems, "building age must not be negative")
	}
	if input.Subject.PrivateArea.IsNegative() {
		problems = append(problems, "subject area must not be negative")
	}

	if input.WeightPolicy != "" {
		policy, err := valuation.ParseWeightPolicy(input.WeightPolicy)
		if err != nil {
			problems = append(problems, err.Error())
		} else {
			input.WeightPolicy = string(policy)
		}
	}

	for i, c := range input.Comparables {
		label := fmt.Sprintf("comparable %d (%s)", i+1, c.Code)
		if c.TotalPrice.IsNegative() {
			problems = append(problems, label+": total price must not be negative")
		}
		if c.PrivateArea.IsNegative() {
			problems = append(problems, label+": area must not be negative")
		}
		if c.Weight.IsNegative() {
			problems = append(problems, label+": weight must not be negative")
		}
		if c.Bedrooms < 0 || c.Suites < 0 || c.Bathrooms < 0 || c.ParkingSpaces < 0 {
			problems = append(problems, label+": room counts must not be negative")
		}
		if c.Provenance != domain.ProvenanceAI && c.Provenance != domain.ProvenanceManual {
			problems = append(problems, fmt.Sprintf("%s: unknown provenance %q", label, c.Provenance))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Kind: ErrInvalidValuation, Problems: problems}
	}
	return nil
}

// Policy resolves the document's weight policy, falling back to def when the
// document names none.
func (v *ValuationInput) Policy(def valuation.WeightPolicy) valuation.WeightPolicy {
	if v.WeightPolicy == "" {
		return def
	}
	p, err := valuation.ParseWeightPolicy(v.WeightPolicy)
	if err != nil {
		return def
	}
	return p
}

// defaultedKeys are comparable fields that take a default when omitted.
var defaultedKeys = map[string]bool{"active": true, "weight": true}

// stripBlankDefaults removes null or empty-string values of defaulted keys
// from each comparable and reports, per comparable, which of those keys
// carry a real value.
func stripBlankDefaults(doc *yaml.Node) []map[string]bool {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "comparables" || root.Content[i+1].Kind != yaml.SequenceNode {
			continue
		}
		items := root.Content[i+1].Content
		given := make([]map[string]bool, len(items))
		for j, item := range items {
			given[j] = make(map[string]bool)
			if item.Kind != yaml.MappingNode {
				continue
			}
			kept := item.Content[:0]
			for k := 0; k+1 < len(item.Content); k += 2 {
				key, value := item.Content[k], item.Content[k+1]
				if defaultedKeys[key.Value] {
					if isBlank(value) {
						continue
					}
					given[j][key.Value] = true
				}
				kept = append(kept, key, value)
			}
			item.Content = kept
		}
		return given
	}
	return nil
}

func isBlank(n *yaml.Node) bool {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		return false
	}
	tag := n.ShortTag()
	return tag == "!!null" || (tag == "!!str" && strings.TrimSpace(n.Value) == "")
}
