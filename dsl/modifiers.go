package dsl

import (
	sdkschema "github.com/reoring/sdkschema"
	js "github.com/reoring/sdkschema/jsonschema"
)

// Go has a single nil for both "absent" and "null". Modifiers therefore agree
// on nil: Optional treats it as absent, Nullable round-trips it and Defaults
// replaces it. Objects look at the whole wrapper chain (see presenceOf) to
// decide whether a field is skipped, emitted as null, or defaulted.

type optionalSchema struct{ inner sdkschema.Schema }

// Optional permits the value to be absent. Objects omit absent optional
// fields from their output instead of emitting nil.
func Optional(s sdkschema.Schema) sdkschema.Schema { return &optionalSchema{inner: s} }

func (o *optionalSchema) TypeName() string { return o.typeNameSeen(nil) }

func (o *optionalSchema) typeNameSeen(seen map[*lazySchema]bool) string {
	return "Optional<" + nameOf(o.inner, seen) + ">"
}

func (o *optionalSchema) ValidateBeforeMap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	if v == nil {
		return nil
	}
	return o.inner.ValidateBeforeMap(ctx, v)
}

func (o *optionalSchema) ValidateBeforeUnmap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	if v == nil {
		return nil
	}
	return o.inner.ValidateBeforeUnmap(ctx, v)
}

func (o *optionalSchema) ValidateBeforeMapXML(ctx *sdkschema.Context, v any) sdkschema.Issues {
	if v == nil {
		return nil
	}
	return o.inner.ValidateBeforeMapXML(ctx, v)
}

func (o *optionalSchema) Map(ctx *sdkschema.Context, v any) any {
	if v == nil {
		return nil
	}
	return o.inner.Map(ctx, v)
}

func (o *optionalSchema) Unmap(ctx *sdkschema.Context, v any) any {
	if v == nil {
		return nil
	}
	return o.inner.Unmap(ctx, v)
}

func (o *optionalSchema) MapXML(ctx *sdkschema.Context, v any) any {
	if v == nil {
		return nil
	}
	return o.inner.MapXML(ctx, v)
}

func (o *optionalSchema) UnmapXML(ctx *sdkschema.Context, v any) any {
	if v == nil {
		return nil
	}
	return o.inner.UnmapXML(ctx, v)
}

func (o *optionalSchema) ToJSONSchema(gc *sdkschema.GenContext) *js.Schema {
	return gc.Generate(o.inner)
}

type nullableSchema struct{ inner sdkschema.Schema }

// Nullable permits nil, which maps and unmaps to nil.
func Nullable(s sdkschema.Schema) sdkschema.Schema { return &nullableSchema{inner: s} }

func (n *nullableSchema) TypeName() string { return n.typeNameSeen(nil) }

func (n *nullableSchema) typeNameSeen(seen map[*lazySchema]bool) string {
	return "Nullable<" + nameOf(n.inner, seen) + ">"
}

func (n *nullableSchema) ValidateBeforeMap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	if v == nil {
		return nil
	}
	return n.inner.ValidateBeforeMap(ctx, v)
}

func (n *nullableSchema) ValidateBeforeUnmap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	if v == nil {
		return nil
	}
	return n.inner.ValidateBeforeUnmap(ctx, v)
}

func (n *nullableSchema) ValidateBeforeMapXML(ctx *sdkschema.Context, v any) sdkschema.Issues {
	if v == nil {
		return nil
	}
	return n.inner.ValidateBeforeMapXML(ctx, v)
}

func (n *nullableSchema) Map(ctx *sdkschema.Context, v any) any {
	if v == nil {
		return nil
	}
	return n.inner.Map(ctx, v)
}

func (n *nullableSchema) Unmap(ctx *sdkschema.Context, v any) any {
	if v == nil {
		return nil
	}
	return n.inner.Unmap(ctx, v)
}

func (n *nullableSchema) MapXML(ctx *sdkschema.Context, v any) any {
	if v == nil {
		return nil
	}
	return n.inner.MapXML(ctx, v)
}

func (n *nullableSchema) UnmapXML(ctx *sdkschema.Context, v any) any {
	if v == nil {
		return nil
	}
	return n.inner.UnmapXML(ctx, v)
}

func (n *nullableSchema) ToJSONSchema(gc *sdkschema.GenContext) *js.Schema {
	return &js.Schema{OneOf: []*js.Schema{js.Null(), gc.Generate(n.inner)}}
}

type defaultsSchema struct {
	inner sdkschema.Schema
	def   any
}

// Defaults substitutes def (a domain value) for nil when mapping. Unmapping
// nil produces the wire form of def.
func Defaults(s sdkschema.Schema, def any) sdkschema.Schema {
	return &defaultsSchema{inner: s, def: def}
}

func (d *defaultsSchema) TypeName() string { return d.typeNameSeen(nil) }

func (d *defaultsSchema) typeNameSeen(seen map[*lazySchema]bool) string {
	return "Defaults<" + nameOf(d.inner, seen) + "," + sdkschema.Serialize(d.def) + ">"
}

func (d *defaultsSchema) ValidateBeforeMap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	if v == nil {
		return nil
	}
	return d.inner.ValidateBeforeMap(ctx, v)
}

func (d *defaultsSchema) ValidateBeforeUnmap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	if v == nil {
		return nil
	}
	return d.inner.ValidateBeforeUnmap(ctx, v)
}

func (d *defaultsSchema) ValidateBeforeMapXML(ctx *sdkschema.Context, v any) sdkschema.Issues {
	if v == nil {
		return nil
	}
	return d.inner.ValidateBeforeMapXML(ctx, v)
}

func (d *defaultsSchema) Map(ctx *sdkschema.Context, v any) any {
	if v == nil {
		return d.def
	}
	return d.inner.Map(ctx, v)
}

func (d *defaultsSchema) Unmap(ctx *sdkschema.Context, v any) any {
	if v == nil {
		v = d.def
	}
	return d.inner.Unmap(ctx, v)
}

func (d *defaultsSchema) MapXML(ctx *sdkschema.Context, v any) any {
	if v == nil {
		return d.def
	}
	return d.inner.MapXML(ctx, v)
}

func (d *defaultsSchema) UnmapXML(ctx *sdkschema.Context, v any) any {
	if v == nil {
		v = d.def
	}
	return d.inner.UnmapXML(ctx, v)
}

func (d *defaultsSchema) ToJSONSchema(gc *sdkschema.GenContext) *js.Schema {
	body := *gc.Generate(d.inner)
	body.Default = d.def
	return &body
}

// presence summarizes the modifier chain wrapping a field schema.
type presence struct {
	optional   bool
	nullable   bool
	hasDefault bool
	def        any
	fixed      bool
	fixedValue any
}

// presenceOf walks Optional/Nullable/Defaults wrappers in any order and notes
// whether the innermost schema is a Literal. Lazy schemas are not forced.
func presenceOf(s sdkschema.Schema) presence {
	var p presence
	for {
		switch t := s.(type) {
		case *optionalSchema:
			p.optional = true
			s = t.inner
		case *nullableSchema:
			p.nullable = true
			s = t.inner
		case *defaultsSchema:
			if !p.hasDefault {
				p.hasDefault = true
				p.def = t.def
			}
			s = t.inner
		case *primitive:
			if t.fixed {
				p.fixed = true
				p.fixedValue = t.convert(nil)
			}
			return p
		default:
			return p
		}
	}
}

// emission is the per-field decision taken by objects.
type emission int

const (
	emitDelegate emission = iota // hand the value to the field schema
	emitSkip                     // leave the destination key out
	emitNull                     // write nil
	emitDefault                  // write the Defaults value (map direction only)
	emitFixed                    // write the Literal value
)

func (p presence) decide(v any, present bool) emission {
	switch {
	case present && v != nil:
		return emitDelegate
	case present && p.nullable:
		return emitNull
	case p.hasDefault:
		return emitDefault
	case p.optional:
		return emitSkip
	case !present && p.fixed:
		return emitFixed
	}
	return emitDelegate
}
