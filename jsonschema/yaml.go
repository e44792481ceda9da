package jsonschema

import (
	"fmt"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// MarshalJSON renders the document with two-space indentation.
func MarshalJSON(s *Schema) ([]byte, error) {
	b, err := j.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("jsonschema: marshal json: %w", err)
	}
	return b, nil
}

// MarshalYAML renders the document as YAML. The schema is first projected
// through its JSON form so the keyword names ($ref, $defs, ...) are preserved.
func MarshalYAML(s *Schema) ([]byte, error) {
	b, err := j.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: marshal yaml: %w", err)
	}
	var doc map[string]any
	if err := j.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("jsonschema: marshal yaml: %w", err)
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: marshal yaml: %w", err)
	}
	return out, nil
}
