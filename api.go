package sdkschema

import (
	"context"
	"errors"
	"log/slog"

	"github.com/reoring/sdkschema/source"
)

// ValidateOpt bundles driver options.
type ValidateOpt struct {
	// Strict disables loose primitive coercion (numeric strings, "true"/"false").
	Strict bool
}

// ErrNilSchema is returned by drivers called without a schema.
var ErrNilSchema = errors.New("sdkschema: nil schema")

func resolveOpt(opts []ValidateOpt) ValidateOpt {
	var opt ValidateOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	return opt
}

// ValidateAndMap validates a JSON-shaped wire value and maps it to its domain
// value. When validation fails the returned error is Issues and Map is not
// invoked.
func ValidateAndMap(v any, s Schema, opts ...ValidateOpt) (any, error) {
	if s == nil {
		return nil, ErrNilSchema
	}
	ctx := NewContext(v, s, resolveOpt(opts).Strict)
	if iss := s.ValidateBeforeMap(ctx, v); len(iss) > 0 {
		logFailure("map", s, iss)
		return nil, iss
	}
	return s.Map(ctx, v), nil
}

// ValidateAndUnmap validates a domain value and unmaps it to its JSON-shaped
// wire value.
func ValidateAndUnmap(v any, s Schema, opts ...ValidateOpt) (any, error) {
	if s == nil {
		return nil, ErrNilSchema
	}
	ctx := NewContext(v, s, resolveOpt(opts).Strict)
	if iss := s.ValidateBeforeUnmap(ctx, v); len(iss) > 0 {
		logFailure("unmap", s, iss)
		return nil, iss
	}
	return s.Unmap(ctx, v), nil
}

// ValidateAndMapXML validates an XML element tree (see source.DecodeXML) and
// maps it to its domain value.
func ValidateAndMapXML(v any, s Schema, opts ...ValidateOpt) (any, error) {
	if s == nil {
		return nil, ErrNilSchema
	}
	ctx := NewContext(v, s, resolveOpt(opts).Strict)
	if iss := s.ValidateBeforeMapXML(ctx, v); len(iss) > 0 {
		logFailure("map_xml", s, iss)
		return nil, iss
	}
	return s.MapXML(ctx, v), nil
}

// ValidateAndUnmapXML validates a domain value and unmaps it to an XML
// element tree.
func ValidateAndUnmapXML(v any, s Schema, opts ...ValidateOpt) (any, error) {
	if s == nil {
		return nil, ErrNilSchema
	}
	ctx := NewContext(v, s, resolveOpt(opts).Strict)
	if iss := s.ValidateBeforeUnmap(ctx, v); len(iss) > 0 {
		logFailure("unmap_xml", s, iss)
		return nil, iss
	}
	return s.UnmapXML(ctx, v), nil
}

// MapJSON decodes a JSON document and maps it through s.
func MapJSON(data []byte, s Schema, opts ...ValidateOpt) (any, error) {
	v, err := source.DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	return ValidateAndMap(v, s, opts...)
}

// UnmapJSON unmaps a domain value through s and encodes the result as JSON.
func UnmapJSON(v any, s Schema, opts ...ValidateOpt) ([]byte, error) {
	w, err := ValidateAndUnmap(v, s, opts...)
	if err != nil {
		return nil, err
	}
	return source.EncodeJSON(w)
}

func logFailure(op string, s Schema, iss Issues) {
	l := Logger()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.Debug("schema validation failed", "op", op, "type", s.TypeName(), "issues", len(iss), "first", iss[0].Pointer())
}
