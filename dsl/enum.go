package dsl

import (
	"slices"
	"strconv"
	"strings"

	sdkschema "github.com/reoring/sdkschema"
	js "github.com/reoring/sdkschema/jsonschema"
)

// Numeric is the constraint of numeric enumeration types.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

type numberEnumSchema[T Numeric] struct {
	values []T
	strict bool
}

// NumberEnum accepts one of values. Numeric strings are accepted unless
// strict. Map returns T; Unmap returns the float64 wire number.
func NumberEnum[T Numeric](values []T, opts ...PrimitiveOpt) sdkschema.Schema {
	return &numberEnumSchema[T]{values: slices.Clone(values), strict: resolvePrimitive(opts).strict}
}

func (e *numberEnumSchema[T]) TypeName() string {
	parts := make([]string, len(e.values))
	for i, v := range e.values {
		parts[i] = strconv.FormatFloat(float64(v), 'f', -1, 64)
	}
	return "Enum<" + strings.Join(parts, ",") + ">"
}

func (e *numberEnumSchema[T]) lookup(v any, strict bool) (T, bool) {
	var zero T
	if t, ok := v.(T); ok {
		v = float64(t)
	}
	if !isNumber(v, strict) {
		return zero, false
	}
	f, _ := toFloat(v)
	for _, candidate := range e.values {
		if float64(candidate) == f {
			return candidate, true
		}
	}
	return zero, false
}

func (e *numberEnumSchema[T]) validate(ctx *sdkschema.Context, v any) sdkschema.Issues {
	if _, ok := e.lookup(v, e.strict || ctx.StrictValidation); ok {
		return nil
	}
	return ctx.Mismatch()
}

func (e *numberEnumSchema[T]) ValidateBeforeMap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return e.validate(ctx, v)
}

func (e *numberEnumSchema[T]) ValidateBeforeUnmap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return e.validate(ctx, v)
}

func (e *numberEnumSchema[T]) ValidateBeforeMapXML(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return e.validate(ctx, v)
}

func (e *numberEnumSchema[T]) Map(_ *sdkschema.Context, v any) any {
	t, _ := e.lookup(v, false)
	return t
}

func (e *numberEnumSchema[T]) Unmap(_ *sdkschema.Context, v any) any {
	t, _ := e.lookup(v, false)
	return float64(t)
}

func (e *numberEnumSchema[T]) MapXML(ctx *sdkschema.Context, v any) any   { return e.Map(ctx, v) }
func (e *numberEnumSchema[T]) UnmapXML(ctx *sdkschema.Context, v any) any { return e.Unmap(ctx, v) }

func (e *numberEnumSchema[T]) ToJSONSchema(*sdkschema.GenContext) *js.Schema {
	out := &js.Schema{Type: "number", Enum: make([]any, len(e.values))}
	integral := true
	for i, v := range e.values {
		out.Enum[i] = float64(v)
		if float64(v) != float64(int64(v)) {
			integral = false
		}
	}
	if integral {
		out.Type = "integer"
	}
	return out
}

type stringEnumSchema[T ~string] struct {
	values []T
}

// StringEnum accepts one of values. Map returns T; Unmap returns the plain
// string.
func StringEnum[T ~string](values ...T) sdkschema.Schema {
	return &stringEnumSchema[T]{values: slices.Clone(values)}
}

func (e *stringEnumSchema[T]) TypeName() string {
	parts := make([]string, len(e.values))
	for i, v := range e.values {
		parts[i] = strconv.Quote(string(v))
	}
	return "Enum<" + strings.Join(parts, ",") + ">"
}

func (e *stringEnumSchema[T]) lookup(v any) (T, bool) {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case T:
		s = string(t)
	default:
		var zero T
		return zero, false
	}
	i := slices.Index(e.values, T(s))
	if i < 0 {
		var zero T
		return zero, false
	}
	return e.values[i], true
}

func (e *stringEnumSchema[T]) validate(ctx *sdkschema.Context, v any) sdkschema.Issues {
	if _, ok := e.lookup(v); ok {
		return nil
	}
	return ctx.Mismatch()
}

func (e *stringEnumSchema[T]) ValidateBeforeMap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return e.validate(ctx, v)
}

func (e *stringEnumSchema[T]) ValidateBeforeUnmap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return e.validate(ctx, v)
}

func (e *stringEnumSchema[T]) ValidateBeforeMapXML(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return e.validate(ctx, v)
}

func (e *stringEnumSchema[T]) Map(_ *sdkschema.Context, v any) any {
	t, _ := e.lookup(v)
	return t
}

func (e *stringEnumSchema[T]) Unmap(_ *sdkschema.Context, v any) any {
	t, _ := e.lookup(v)
	return string(t)
}

func (e *stringEnumSchema[T]) MapXML(ctx *sdkschema.Context, v any) any   { return e.Map(ctx, v) }
func (e *stringEnumSchema[T]) UnmapXML(ctx *sdkschema.Context, v any) any { return e.Unmap(ctx, v) }

func (e *stringEnumSchema[T]) ToJSONSchema(*sdkschema.GenContext) *js.Schema {
	out := &js.Schema{Type: "string", Enum: make([]any, len(e.values))}
	for i, v := range e.values {
		out.Enum[i] = string(v)
	}
	return out
}
