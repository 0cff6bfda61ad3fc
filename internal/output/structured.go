package output

import (
	"encoding/json"

	"github.com/pharosnegocios/imobcalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// JSONFormatter renders reports as indented JSON
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.SimulationReport) ([]byte, error) {
	return marshalJSON(report)
}

func (j JSONFormatter) FormatValuation(report *domain.ValuationReport) ([]byte, error) {
	return marshalJSON(report)
}

func (j JSONFormatter) FormatSensitivityAnalysis(analysis *domain.SensitivityAnalysis) ([]byte, error) {
	return marshalJSON(analysis)
}

func marshalJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// YAMLFormatter renders reports as YAML
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(report *domain.SimulationReport) ([]byte, error) {
	return yaml.Marshal(report)
}

func (y YAMLFormatter) FormatValuation(report *domain.ValuationReport) ([]byte, error) {
	return yaml.Marshal(report)
}

func (y YAMLFormatter) FormatSensitivityAnalysis(analysis *domain.SensitivityAnalysis) ([]byte, error) {
	return yaml.Marshal(analysis)
}
