package dsl

import (
	sdkschema "github.com/reoring/sdkschema"
	js "github.com/reoring/sdkschema/jsonschema"
	"github.com/reoring/sdkschema/source"
)

// Tagged pairs a discriminator value with the schema it selects.
type Tagged struct {
	Tag    string
	Schema sdkschema.Schema
}

// Variant constructs a Tagged entry.
func Variant(tag string, s sdkschema.Schema) Tagged { return Tagged{Tag: tag, Schema: s} }

func findTag(variants []Tagged, tag any) (sdkschema.Schema, bool) {
	s, ok := tag.(string)
	if !ok {
		return nil, false
	}
	for _, v := range variants {
		if v.Tag == s {
			return v.Schema, true
		}
	}
	return nil, false
}

// UnionOpt configures OneOf and AnyOf.
type UnionOpt func(*unionSchema)

// WithDiscriminator dispatches objects whose field holds one of the variant
// tags directly to the tagged schema, skipping trial validation. The field
// name is the same on the wire and in the domain.
func WithDiscriminator(field string, variants ...Tagged) UnionOpt {
	return func(u *unionSchema) {
		u.field = field
		u.variants = append([]Tagged(nil), variants...)
	}
}

type unionSchema struct {
	kind      string
	exclusive bool
	schemas   []sdkschema.Schema
	field     string
	variants  []Tagged
}

// OneOf requires exactly one of schemas to accept the value.
func OneOf(schemas []sdkschema.Schema, opts ...UnionOpt) sdkschema.Schema {
	return newUnion("OneOf", true, schemas, opts)
}

// AnyOf requires at least one of schemas to accept the value; the first
// accepting schema maps it.
func AnyOf(schemas []sdkschema.Schema, opts ...UnionOpt) sdkschema.Schema {
	return newUnion("AnyOf", false, schemas, opts)
}

func newUnion(kind string, exclusive bool, schemas []sdkschema.Schema, opts []UnionOpt) *unionSchema {
	u := &unionSchema{kind: kind, exclusive: exclusive, schemas: append([]sdkschema.Schema(nil), schemas...)}
	for _, fn := range opts {
		fn(u)
	}
	return u
}

func (u *unionSchema) TypeName() string { return u.typeNameSeen(nil) }

func (u *unionSchema) typeNameSeen(seen map[*lazySchema]bool) string {
	return u.kind + "<" + joinNames(u.schemas, seen, " | ") + ">"
}

// tagValue reads the discriminator field of m. XML elements may carry the
// tag as a child element or as an attribute.
func tagValue(m map[string]any, field string, d direction) (any, bool) {
	if v, ok := m[field]; ok {
		return v, true
	}
	if d != dirMapXML {
		return nil, false
	}
	attrs, _ := m[source.XMLAttrKey].(map[string]any)
	v, ok := attrs[field]
	return v, ok
}

// tagged returns the schema selected by the discriminator, if any.
func (u *unionSchema) tagged(v any, d direction) (sdkschema.Schema, bool) {
	if u.field == "" {
		return nil, false
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	tag, ok := tagValue(m, u.field, d)
	if !ok {
		return nil, false
	}
	return findTag(u.variants, tag)
}

// matches runs trial validation. JSON trials are strict first so that "5"
// picks string over number; lenient trials run only when nothing matched
// strictly and the caller is lenient. XML scalars are always strings, so XML
// trials keep the caller's strictness.
func (u *unionSchema) matches(ctx *sdkschema.Context, v any, d direction) []sdkschema.Schema {
	phases := []bool{ctx.StrictValidation}
	if !d.xml() && !ctx.StrictValidation {
		phases = []bool{true, false}
	}
	for _, strict := range phases {
		trial := ctx.WithStrict(strict)
		var out []sdkschema.Schema
		for _, s := range u.schemas {
			if len(validateDir(s, trial.As(s), v, d)) > 0 {
				continue
			}
			out = append(out, s)
			if !u.exclusive {
				break
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func (u *unionSchema) validate(ctx *sdkschema.Context, v any, d direction) sdkschema.Issues {
	if s, ok := u.tagged(v, d); ok {
		return validateDir(s, ctx.As(s), v, d)
	}
	matched := u.matches(ctx, v, d)
	switch {
	case len(matched) == 0:
		return ctx.Fail(sdkschema.CodeUnionNoMatch, nil)
	case len(matched) > 1:
		return ctx.Fail(sdkschema.CodeUnionAmbiguous, map[string]string{"types": joinNames(matched, nil, ", ")})
	}
	return nil
}

func (u *unionSchema) convert(ctx *sdkschema.Context, v any, d direction) any {
	s, ok := u.tagged(v, d)
	if !ok {
		matched := u.matches(ctx, v, d)
		if len(matched) == 0 {
			return v
		}
		s = matched[0]
	}
	return convertDir(s, ctx.As(s), v, d)
}

func (u *unionSchema) ValidateBeforeMap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return u.validate(ctx, v, dirMap)
}

func (u *unionSchema) ValidateBeforeUnmap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return u.validate(ctx, v, dirUnmap)
}

func (u *unionSchema) ValidateBeforeMapXML(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return u.validate(ctx, v, dirMapXML)
}

func (u *unionSchema) Map(ctx *sdkschema.Context, v any) any      { return u.convert(ctx, v, dirMap) }
func (u *unionSchema) Unmap(ctx *sdkschema.Context, v any) any    { return u.convert(ctx, v, dirUnmap) }
func (u *unionSchema) MapXML(ctx *sdkschema.Context, v any) any   { return u.convert(ctx, v, dirMapXML) }
func (u *unionSchema) UnmapXML(ctx *sdkschema.Context, v any) any { return u.convert(ctx, v, dirUnmapXML) }

func (u *unionSchema) ToJSONSchema(gc *sdkschema.GenContext) *js.Schema {
	branches := make([]*js.Schema, len(u.schemas))
	var disc *js.Discriminator
	if u.field == "" {
		for i, s := range u.schemas {
			branches[i] = gc.Generate(s)
		}
	} else {
		for i, s := range u.schemas {
			branches[i] = js.RefTo(gc.Named(unwrapLazy(s)))
		}
		disc = discriminatorOf(gc, u.field, u.variants)
	}
	if u.exclusive {
		return &js.Schema{OneOf: branches, Discriminator: disc}
	}
	return &js.Schema{AnyOf: branches, Discriminator: disc}
}

func discriminatorOf(gc *sdkschema.GenContext, field string, variants []Tagged) *js.Discriminator {
	d := &js.Discriminator{PropertyName: field, Mapping: make(map[string]string, len(variants))}
	for _, v := range variants {
		d.Mapping[v.Tag] = js.DefRef(gc.Named(unwrapLazy(v.Schema)))
	}
	return d
}
