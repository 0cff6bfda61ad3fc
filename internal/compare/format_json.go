package compare

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// JSONFormatter formats comparison results as JSON. Plan names are written
// without HTML escaping.
type JSONFormatter struct {
	Pretty bool // indent with two spaces
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if jf.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(compSet); err != nil {
		return "", fmt.Errorf("encode comparison: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
