package transform

import (
	"fmt"

	"github.com/pharosnegocios/imobcalc/internal/domain"
)

// PlanTransform is a composable, named change to an investment plan. Plans
// are values, so a transform never alters the plan it is given.
type PlanTransform interface {
	// Apply returns the modified plan.
	Apply(base domain.InvestmentPlan) (domain.InvestmentPlan, error)

	// Name returns a short identifier (e.g., "delay_delivery").
	Name() string

	// Description returns a human-readable summary of the change.
	Description() string

	// Validate checks the transform against base without applying it.
	Validate(base domain.InvestmentPlan) error
}

// ApplyTransforms applies transforms in order, each receiving the output of
// the previous one.
func ApplyTransforms(base domain.InvestmentPlan, transforms []PlanTransform) (domain.InvestmentPlan, error) {
	current := base
	for i, t := range transforms {
		if t == nil {
			return base, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return base, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(current)
		if err != nil {
			return base, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}
	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
