package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry creates transforms from string parameters, for use by
// the CLI and the HTTP API.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (PlanTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("adjust_appreciation", createAdjustAppreciation)
	registry.Register("set_appreciation", createSetAppreciation)
	registry.Register("set_commission", createSetCommission)
	registry.Register("delay_delivery", createDelayDelivery)
	registry.Register("adjust_correction_rate", createAdjustCorrectionRate)
	registry.Register("set_policy_rate", createSetPolicyRate)
	registry.Register("shift_to_entry", createShiftToEntry)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (PlanTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses "name:key=value,key=value",
// e.g. "delay_delivery:months=6".
func (r *TransformRegistry) ParseTransformSpec(spec string) (PlanTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func createAdjustAppreciation(params map[string]string) (PlanTransform, error) {
	delta, err := decimalParam("adjust_appreciation", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustAppreciation{Delta: delta}, nil
}

func createSetAppreciation(params map[string]string) (PlanTransform, error) {
	rate, err := decimalParam("set_appreciation", params, "rate")
	if err != nil {
		return nil, err
	}
	return &SetAppreciation{Rate: rate}, nil
}

func createSetCommission(params map[string]string) (PlanTransform, error) {
	percent, err := decimalParam("set_commission", params, "percent")
	if err != nil {
		return nil, err
	}
	return &SetCommission{Percent: percent}, nil
}

func createDelayDelivery(params map[string]string) (PlanTransform, error) {
	monthsStr, ok := params["months"]
	if !ok {
		return nil, fmt.Errorf("delay_delivery requires 'months' parameter")
	}
	months, err := strconv.Atoi(monthsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid months value: %w", err)
	}
	return &DelayDelivery{Months: months}, nil
}

func createAdjustCorrectionRate(params map[string]string) (PlanTransform, error) {
	delta, err := decimalParam("adjust_correction_rate", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustCorrectionRate{Delta: delta}, nil
}

func createSetPolicyRate(params map[string]string) (PlanTransform, error) {
	rate, err := decimalParam("set_policy_rate", params, "rate")
	if err != nil {
		return nil, err
	}
	return &SetPolicyRate{Rate: rate}, nil
}

func createShiftToEntry(params map[string]string) (PlanTransform, error) {
	percent, err := decimalParam("shift_to_entry", params, "percent")
	if err != nil {
		return nil, err
	}
	return &ShiftToEntry{Percent: percent}, nil
}
