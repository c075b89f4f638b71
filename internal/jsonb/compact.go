package jsonb

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Compact renders a JSON value as single-line JSON.
//
// Strings and byte slices are treated as already-encoded documents and are
// compacted without re-ordering object keys; any other value is encoded.
func Compact(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "null", nil
	case string:
		return compactBytes([]byte(v))
	case []byte:
		return compactBytes(v)
	case json.RawMessage:
		return compactBytes(v)
	default:
		return Encode(v)
	}
}

// Encode marshals a decoded value to single-line JSON without HTML escaping
func Encode(value any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func compactBytes(doc []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, doc); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}
	return buf.String(), nil
}

// Indent pretty-prints a JSON object or array. It reports false for anything
// else, including scalars and invalid documents.
func Indent(doc string) (string, bool) {
	trimmed := bytes.TrimSpace([]byte(doc))
	if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
		return "", false
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
		return "", false
	}
	return buf.String(), true
}
