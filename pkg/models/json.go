package models

import (
	"bytes"
	"encoding/json"
)

var emptyArray = json.RawMessage(`[]`)

// Marshal encodes v as compact JSON without HTML escaping, so anchor markup in
// footers and card text is stored as written.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// RawJSON encodes an opaque decoded value, falling back to [] when the value is
// absent or cannot be encoded.
func RawJSON(v any) json.RawMessage {
	if v == nil {
		return emptyArray
	}
	data, err := Marshal(v)
	if err != nil {
		return emptyArray
	}
	return data
}

// String returns v when it is a string and "" otherwise.
func String(v any) string {
	s, _ := v.(string)
	return s
}
