package dsl

import (
	"encoding/json"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	sdkschema "github.com/reoring/sdkschema"
	js "github.com/reoring/sdkschema/jsonschema"
)

// PrimitiveOpt configures primitive schemas.
type PrimitiveOpt func(*primitiveOpts)

type primitiveOpts struct{ strict bool }

// Strict disables loose coercion for a primitive regardless of the driver's
// strictness: numbers must be numeric, booleans must be bool.
func Strict() PrimitiveOpt { return func(o *primitiveOpts) { o.strict = true } }

func resolvePrimitive(opts []PrimitiveOpt) primitiveOpts {
	var o primitiveOpts
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// primitive implements the symmetric part shared by leaf schemas: the same
// predicate guards map, unmap and the XML flavour, and one conversion serves
// both directions.
type primitive struct {
	name    string
	strict  bool
	fixed   bool // the value does not depend on the input
	accept  func(v any, strict bool) bool
	convert func(v any) any
	schema  func() *js.Schema
}

func (p *primitive) TypeName() string { return p.name }

func (p *primitive) validate(ctx *sdkschema.Context, v any) sdkschema.Issues {
	if p.accept(v, p.strict || ctx.StrictValidation) {
		return nil
	}
	return ctx.Mismatch()
}

func (p *primitive) ValidateBeforeMap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return p.validate(ctx, v)
}

func (p *primitive) ValidateBeforeUnmap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return p.validate(ctx, v)
}

func (p *primitive) ValidateBeforeMapXML(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return p.validate(ctx, v)
}

func (p *primitive) Map(_ *sdkschema.Context, v any) any      { return p.convert(v) }
func (p *primitive) Unmap(_ *sdkschema.Context, v any) any    { return p.convert(v) }
func (p *primitive) MapXML(_ *sdkschema.Context, v any) any   { return p.convert(v) }
func (p *primitive) UnmapXML(_ *sdkschema.Context, v any) any { return p.convert(v) }

func (p *primitive) ToJSONSchema(*sdkschema.GenContext) *js.Schema { return p.schema() }

func identity(v any) any { return v }

// String accepts Go strings only.
func String() sdkschema.Schema {
	return &primitive{
		name:    "string",
		accept:  func(v any, _ bool) bool { _, ok := v.(string); return ok },
		convert: identity,
		schema:  func() *js.Schema { return &js.Schema{Type: "string"} },
	}
}

// Number accepts numeric values and, unless strict, strings holding a finite
// number ("12.5"). Mapped and unmapped values are float64.
func Number(opts ...PrimitiveOpt) sdkschema.Schema {
	return &primitive{
		name:    "number",
		strict:  resolvePrimitive(opts).strict,
		accept:  isNumber,
		convert: func(v any) any { f, _ := toFloat(v); return f },
		schema:  func() *js.Schema { return &js.Schema{Type: "number"} },
	}
}

// BigInt accepts arbitrary precision integers. Unless strict, integral floats
// and strings matching ^-?\d+$ are accepted too. Mapped and unmapped values
// are *big.Int.
func BigInt(opts ...PrimitiveOpt) sdkschema.Schema {
	return &primitive{
		name:    "bigint",
		strict:  resolvePrimitive(opts).strict,
		accept:  isBigInt,
		convert: func(v any) any { return toBigInt(v) },
		schema:  func() *js.Schema { return &js.Schema{Type: "integer"} },
	}
}

// Boolean accepts bool and, unless strict, the strings "true" and "false".
func Boolean(opts ...PrimitiveOpt) sdkschema.Schema {
	return &primitive{
		name:   "boolean",
		strict: resolvePrimitive(opts).strict,
		accept: func(v any, strict bool) bool {
			switch t := v.(type) {
			case bool:
				return true
			case string:
				return !strict && (t == "true" || t == "false")
			}
			return false
		},
		convert: func(v any) any {
			if s, ok := v.(string); ok {
				return s == "true"
			}
			return v
		},
		schema: func() *js.Schema { return &js.Schema{Type: "boolean"} },
	}
}

// Literal never fails validation and always maps and unmaps to value. It is
// meant for discriminator tags and type markers; an object writes the literal
// even when the field is absent from its input.
func Literal(value any) sdkschema.Schema {
	return &primitive{
		name:    "Literal<" + sdkschema.Serialize(value) + ">",
		fixed:   true,
		accept:  func(any, bool) bool { return true },
		convert: func(any) any { return value },
		schema:  func() *js.Schema { return &js.Schema{Const: value} },
	}
}

// Unknown accepts and passes through anything.
func Unknown() sdkschema.Schema {
	return &primitive{
		name:    "unknown",
		accept:  func(any, bool) bool { return true },
		convert: identity,
		schema:  func() *js.Schema { return &js.Schema{} },
	}
}

var integerPattern = regexp.MustCompile(`^-?\d+$`)

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func isNumber(v any, strict bool) bool {
	switch t := v.(type) {
	case string:
		if strict {
			return false
		}
		_, ok := parseNumericString(t)
		return ok
	case *big.Int:
		return false
	}
	f, ok := toFloat(v)
	return ok && finite(f)
}

func parseNumericString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(f) {
		return 0, false
	}
	return f, true
}

// toFloat converts Go numeric kinds, json.Number and numeric strings.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		return parseNumericString(t)
	}
	return 0, false
}

func isBigInt(v any, strict bool) bool {
	switch t := v.(type) {
	case *big.Int:
		return t != nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case json.Number:
		return integerPattern.MatchString(string(t))
	case float64:
		return !strict && finite(t) && t == math.Trunc(t)
	case string:
		return !strict && integerPattern.MatchString(t)
	}
	return false
}

func toBigInt(v any) *big.Int {
	switch t := v.(type) {
	case *big.Int:
		return t
	case json.Number:
		n, _ := new(big.Int).SetString(string(t), 10)
		return n
	case string:
		n, _ := new(big.Int).SetString(t, 10)
		return n
	case float64:
		n, _ := big.NewFloat(t).Int(nil)
		return n
	case uint:
		return new(big.Int).SetUint64(uint64(t))
	case uint64:
		return new(big.Int).SetUint64(t)
	case uint8:
		return big.NewInt(int64(t))
	case uint16:
		return big.NewInt(int64(t))
	case uint32:
		return big.NewInt(int64(t))
	case int:
		return big.NewInt(int64(t))
	case int8:
		return big.NewInt(int64(t))
	case int16:
		return big.NewInt(int64(t))
	case int32:
		return big.NewInt(int64(t))
	case int64:
		return big.NewInt(t)
	}
	return nil
}
