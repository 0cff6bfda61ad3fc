package record

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/pharosnegocios/imobcalc/internal/valuation"
	"github.com/shopspring/decimal"
)

// ParseComparables normalizes a free-form comparable payload, as returned by
// the AI comparable search, into typed comparables. The payload is either a
// JSON array or an object holding the array under "comparaveis" or
// "comparables". Both camelCase and snake_case keys are accepted.
//
// Every element is tagged as AI-sourced and active, ordered by position, and
// given a COMP-NNN code when it has none. Elements with unusable fields are
// all reported in a single *FieldError.
func ParseComparables(raw []byte) ([]domain.Comparable, error) {
	elements, err := comparableElements(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode comparables: %w", err)
	}

	errs := &FieldError{}
	comparables := make([]domain.Comparable, 0, len(elements))
	for i, element := range elements {
		prefix := fmt.Sprintf("comparables[%d].", i)
		f, err := decodeFields(element)
		if err != nil {
			errs.add(prefix[:len(prefix)-1], "not an object")
			continue
		}
		comparables = append(comparables, normalizeComparable(&reader{f: f, prefix: prefix, errs: errs}, i))
	}

	if err := errs.errOrNil(); err != nil {
		return nil, err
	}
	return comparables, nil
}

func comparableElements(raw []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var wrapper struct {
		Comparaveis []json.RawMessage `json:"comparaveis"`
		Comparables []json.RawMessage `json:"comparables"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, err
	}
	if wrapper.Comparaveis != nil {
		return wrapper.Comparaveis, nil
	}
	return wrapper.Comparables, nil
}

func normalizeComparable(r *reader, i int) domain.Comparable {
	code := r.text("", "codigo", "code")
	if code == "" {
		code = fmt.Sprintf("COMP-%03d", i+1)
	}

	return domain.Comparable{
		Code:          code,
		Project:       r.text("", "empreendimento", "project"),
		TotalPrice:    r.amount(nil, "valorTotal", "valor_total", "totalPrice"),
		PrivateArea:   r.amount(ptr(decimal.Zero), "m2Privativo", "m2_privativo", "privateArea"),
		Bedrooms:      r.count("quartos", "bedrooms"),
		Suites:        r.count("suites"),
		Bathrooms:     r.count("banheiros", "bathrooms"),
		ParkingSpaces: r.count("vagas", "parkingSpaces"),
		Amenities:     r.text("", "infra", "amenities"),
		Furnishing:    r.text("", "mobilia", "furnishing"),
		FloorPosition: r.text("", "andarPosicao", "andar_posicao", "floorPosition"),
		Condition:     r.text("", "condicao", "condition"),
		LastUpdated:   r.text("", "dataAtualizacao", "data_atualizacao", "lastUpdated"),
		SourceURL:     r.text("", "fonteUrl", "fonte_url", "sourceUrl"),
		Weight:        r.amount(ptr(valuation.DefaultWeight), "peso", "weight"),
		Provenance:    domain.ProvenanceAI,
		Active:        true,
		Order:         i + 1,
	}
}
