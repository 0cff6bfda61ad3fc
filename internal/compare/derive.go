package compare

import (
	"fmt"
	"strings"

	"github.com/pharosnegocios/imobcalc/internal/transform"
)

// DeriveAlternatives builds one alternative per template name and one per
// transform spec, each applied to the base plan and named after it.
func DeriveAlternatives(base NamedPlan, templates *transform.TemplateRegistry, names, specs []string) ([]NamedPlan, error) {
	plans := make([]NamedPlan, 0, len(names)+len(specs))
	for _, name := range names {
		tmpl, ok := templates.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown template %q (valid: %s)", name, strings.Join(templates.List(), ", "))
		}
		plan, err := transform.ApplyTemplate(base.Plan, tmpl)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", tmpl.Name, err)
		}
		plans = append(plans, NamedPlan{Name: base.Name + " + " + tmpl.Name, Plan: plan})
	}

	registry := transform.NewTransformRegistry()
	for _, spec := range specs {
		t, err := registry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		plan, err := transform.ApplyTransforms(base.Plan, []transform.PlanTransform{t})
		if err != nil {
			return nil, err
		}
		plans = append(plans, NamedPlan{Name: base.Name + " + " + spec, Plan: plan})
	}
	return plans, nil
}
