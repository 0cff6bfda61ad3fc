package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in plan templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template is a named collection of transforms
type Template struct {
	Name        string
	Category    string
	Description string
	Transforms  []PlanTransform
}

// Template categories, in help order.
const (
	CategoryMarket   = "Market"
	CategoryDelivery = "Delivery"
	CategoryRates    = "Rates"
	CategoryPayment  = "Payment"
	CategoryCombined = "Combined"
)

var categoryOrder = []string{CategoryMarket, CategoryDelivery, CategoryRates, CategoryPayment, CategoryCombined}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a registry with the common what-if plans.
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "optimistic",
		Category:    CategoryMarket,
		Description: "Appreciation 3 p.p. a year higher",
		Transforms:  []PlanTransform{&AdjustAppreciation{Delta: decimal.NewFromInt(3)}},
	})
	registry.Register(Template{
		Name:        "pessimistic",
		Category:    CategoryMarket,
		Description: "Appreciation 3 p.p. a year lower",
		Transforms:  []PlanTransform{&AdjustAppreciation{Delta: decimal.NewFromInt(-3)}},
	})
	registry.Register(Template{
		Name:        "stagnant",
		Category:    CategoryMarket,
		Description: "No appreciation at all",
		Transforms:  []PlanTransform{&SetAppreciation{Rate: decimal.Zero}},
	})

	registry.Register(Template{
		Name:        "delay_6m",
		Category:    CategoryDelivery,
		Description: "Keys delivered 6 months late",
		Transforms:  []PlanTransform{&DelayDelivery{Months: 6}},
	})
	registry.Register(Template{
		Name:        "delay_12m",
		Category:    CategoryDelivery,
		Description: "Keys delivered 12 months late",
		Transforms:  []PlanTransform{&DelayDelivery{Months: 12}},
	})

	registry.Register(Template{
		Name:        "high_inflation",
		Category:    CategoryRates,
		Description: "Correction index 4 p.p. a year higher",
		Transforms:  []PlanTransform{&AdjustCorrectionRate{Delta: decimal.NewFromInt(4)}},
	})
	registry.Register(Template{
		Name:        "selic_cut",
		Category:    CategoryRates,
		Description: "Selic cut to 9% a year",
		Transforms:  []PlanTransform{&SetPolicyRate{Rate: decimal.NewFromInt(9)}},
	})

	registry.Register(Template{
		Name:        "commission_4pct",
		Category:    CategoryPayment,
		Description: "Sale commission negotiated down to 4%",
		Transforms:  []PlanTransform{&SetCommission{Percent: decimal.NewFromInt(4)}},
	})
	registry.Register(Template{
		Name:        "bigger_entry",
		Category:    CategoryPayment,
		Description: "Move 10% of the price from the keys to the entry",
		Transforms:  []PlanTransform{&ShiftToEntry{Percent: decimal.NewFromInt(10)}},
	})

	registry.Register(Template{
		Name:        "worst_case",
		Category:    CategoryCombined,
		Description: "Stagnant market, 12 months late, high inflation",
		Transforms: []PlanTransform{
			&SetAppreciation{Rate: decimal.Zero},
			&DelayDelivery{Months: 12},
			&AdjustCorrectionRate{Delta: decimal.NewFromInt(4)},
		},
	})
	registry.Register(Template{
		Name:        "best_case",
		Category:    CategoryCombined,
		Description: "Optimistic market with a 4% commission",
		Transforms: []PlanTransform{
			&AdjustAppreciation{Delta: decimal.NewFromInt(3)},
			&SetCommission{Percent: decimal.NewFromInt(4)},
		},
	})

	return registry
}

// ApplyTemplate applies every transform of template to base.
func ApplyTemplate(base domain.InvestmentPlan, template Template) (domain.InvestmentPlan, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList splits a comma-separated template list
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	categories := make(map[string][]Template)
	for _, name := range registry.List() {
		t := registry.templates[name]
		category := t.Category
		if category == "" {
			category = CategoryCombined
		}
		categories[category] = append(categories[category], t)
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, category := range categoryOrder {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
