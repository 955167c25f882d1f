// Package capability encodes in-memory values as JSON text and decodes JSON
// text into typed values carrying a named bundle of behaviors (a capability
// set). Decoding never rewires an existing value: a fresh typed value is
// constructed from the parsed fields.
package capability

import (
	"encoding/json"
	"fmt"
)

// ParseError reports that text handed to Deserialize is not valid JSON (or
// cannot populate the capability set's attributes).
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid structured text: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Serialize returns the JSON encoding of v: arbitrary nesting of
// primitives, sequences and string-keyed mappings, standard encoding rules,
// no custom formatting.
func Serialize(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("unable to serialize value: %w", err)
	}
	return string(data), nil
}

// Deserialize parses text as JSON and constructs a value exposing the given
// capability set. The text is assumed to carry the attributes the set
// expects; malformed JSON fails with ParseError.
func Deserialize(set Set, text string) (Value, error) {
	if set.construct == nil {
		return nil, fmt.Errorf("capability set %q has no constructor", set.name)
	}
	v, err := set.construct([]byte(text))
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return v, nil
}

// decodeInto is the shared decode helper for capability set constructors.
func decodeInto[T any](data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, err
	}
	return v, nil
}
