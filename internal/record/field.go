package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidField is wrapped by every FieldError.
var ErrInvalidField = errors.New("invalid field")

// Status classifies a raw field value.
type Status string

const (
	// Absent means the key is missing, null or an empty string.
	Absent Status = "absent"
	// Zero means the value parsed to exactly zero.
	Zero Status = "zero"
	// Present means the value parsed to a non-zero number.
	Present Status = "present"
	// Invalid means the value is present but not a number.
	Invalid Status = "invalid"
)

// Number is a numeric field read from a loosely typed record.
type Number struct {
	Status Status
	Value  decimal.Decimal
	Raw    string
}

// Usable reports whether the field carries a number, zero included.
func (n Number) Usable() bool {
	return n.Status == Zero || n.Status == Present
}

// FieldIssue describes one rejected field.
type FieldIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// FieldError lists every rejected field of a record.
type FieldError struct {
	Issues []FieldIssue
}

func (e *FieldError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.Field + ": " + issue.Reason
	}
	return fmt.Sprintf("%s: %s", ErrInvalidField, strings.Join(parts, "; "))
}

func (e *FieldError) Unwrap() error { return ErrInvalidField }

func (e *FieldError) add(field, format string, args ...any) {
	e.Issues = append(e.Issues, FieldIssue{Field: field, Reason: fmt.Sprintf(format, args...)})
}

func (e *FieldError) errOrNil() error {
	if e == nil || len(e.Issues) == 0 {
		return nil
	}
	return e
}

// fields is a decoded JSON object whose values are kept raw so that their
// type can be inspected.
type fields map[string]json.RawMessage

func decodeFields(raw []byte) (fields, error) {
	var f fields
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&f); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, errors.New("record is null")
	}
	return f, nil
}

// lookup returns the first key present, with its raw value.
func (f fields) lookup(keys ...string) (string, json.RawMessage, bool) {
	for _, k := range keys {
		if raw, ok := f[k]; ok {
			return k, raw, true
		}
	}
	return keys[0], nil, false
}

// number reads a numeric field. Numbers and numeric strings are accepted.
func (f fields) number(keys ...string) Number {
	_, raw, ok := f.lookup(keys...)
	if !ok {
		return Number{Status: Absent}
	}
	return parseNumber(raw)
}

func parseNumber(raw json.RawMessage) Number {
	text := strings.TrimSpace(string(raw))
	if text == "null" || text == "" {
		return Number{Status: Absent}
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Number{Status: Invalid, Raw: text}
		}
		text = strings.TrimSpace(s)
		if text == "" {
			return Number{Status: Absent}
		}
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return Number{Status: Invalid, Raw: text}
	}
	if d.IsZero() {
		return Number{Status: Zero, Value: decimal.Zero, Raw: text}
	}
	return Number{Status: Present, Value: d, Raw: text}
}

// text reads a string field. A non-string value is reported as invalid.
func (f fields) text(keys ...string) (string, Status) {
	_, raw, ok := f.lookup(keys...)
	if !ok || strings.TrimSpace(string(raw)) == "null" {
		return "", Absent
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", Invalid
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", Absent
	}
	return s, Present
}

// reader accumulates typed values and the issues found while reading them.
type reader struct {
	f      fields
	prefix string
	errs   *FieldError
}

func (r *reader) name(key string) string {
	return r.prefix + key
}

// amount reads a non-negative number, substituting def when absent.
// A nil def makes the field required.
func (r *reader) amount(def *decimal.Decimal, keys ...string) decimal.Decimal {
	return r.read(def, false, keys...)
}

// signed is like amount but accepts negative values.
func (r *reader) signed(def *decimal.Decimal, keys ...string) decimal.Decimal {
	return r.read(def, true, keys...)
}

func (r *reader) read(def *decimal.Decimal, allowNegative bool, keys ...string) decimal.Decimal {
	key, _, _ := r.f.lookup(keys...)
	n := r.f.number(keys...)
	switch n.Status {
	case Absent:
		if def == nil {
			r.errs.add(r.name(key), "required")
			return decimal.Zero
		}
		return *def
	case Invalid:
		r.errs.add(r.name(key), "not a number: %s", n.Raw)
		return decimal.Zero
	}
	if !allowNegative && n.Value.IsNegative() {
		r.errs.add(r.name(key), "must not be negative")
		return decimal.Zero
	}
	return n.Value
}

// count reads a non-negative integer, zero when absent.
func (r *reader) count(keys ...string) int {
	key, _, _ := r.f.lookup(keys...)
	n := r.f.number(keys...)
	switch n.Status {
	case Absent, Zero:
		return 0
	case Invalid:
		r.errs.add(r.name(key), "not a number: %s", n.Raw)
		return 0
	}
	if !n.Value.IsInteger() {
		r.errs.add(r.name(key), "must be a whole number")
		return 0
	}
	if n.Value.IsNegative() {
		r.errs.add(r.name(key), "must not be negative")
		return 0
	}
	return int(n.Value.IntPart())
}

// text reads a string, returning def when absent.
func (r *reader) text(def string, keys ...string) string {
	key, _, _ := r.f.lookup(keys...)
	s, status := r.f.text(keys...)
	switch status {
	case Absent:
		return def
	case Invalid:
		r.errs.add(r.name(key), "not a string")
		return def
	}
	return s
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }
