package sdkschema

import (
	"fmt"

	j "github.com/goccy/go-json"

	"github.com/reoring/sdkschema/source"
)

// MapInto validates and maps wire through s, then binds the domain value to T
// using its json struct tags (tags name domain fields, not wire fields).
func MapInto[T any](wire any, s Schema, opts ...ValidateOpt) (T, error) {
	var out T
	v, err := ValidateAndMap(wire, s, opts...)
	if err != nil {
		return out, err
	}
	b, err := j.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("sdkschema: bind %T: %w", out, err)
	}
	if err := j.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("sdkschema: bind %T: %w", out, err)
	}
	return out, nil
}

// UnmapFrom projects a typed domain value onto the untyped domain shape and
// unmaps it through s. Fields tagged omitempty are treated as absent.
func UnmapFrom[T any](v T, s Schema, opts ...ValidateOpt) (any, error) {
	b, err := j.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("sdkschema: project %T: %w", v, err)
	}
	dv, err := source.DecodeJSON(b)
	if err != nil {
		return nil, fmt.Errorf("sdkschema: project %T: %w", v, err)
	}
	return ValidateAndUnmap(dv, s, opts...)
}
