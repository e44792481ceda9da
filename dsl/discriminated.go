package dsl

import (
	"strings"

	sdkschema "github.com/reoring/sdkschema"
	js "github.com/reoring/sdkschema/jsonschema"
)

type discriminatedSchema struct {
	wireField   string
	domainField string
	defaultKey  string
	variants    []Tagged
}

// DiscriminatedObject selects one of variants per value. The tag is read
// from wireField on the wire (element or attribute in XML) and from
// domainField in domain values. When the tag is missing or unknown, the
// variants are tried in reverse declaration order and the first one that
// validates the whole value wins; failing that, the variant tagged
// defaultKey is used. The discriminator field is mapped by the selected
// schema like any other field.
func DiscriminatedObject(wireField, domainField, defaultKey string, variants ...Tagged) sdkschema.Schema {
	return &discriminatedSchema{
		wireField:   wireField,
		domainField: domainField,
		defaultKey:  defaultKey,
		variants:    append([]Tagged(nil), variants...),
	}
}

func (o *discriminatedSchema) TypeName() string {
	tags := make([]string, len(o.variants))
	for i, v := range o.variants {
		tags[i] = v.Tag
	}
	return "DiscriminatedUnion<" + o.wireField + ",[" + strings.Join(tags, ",") + "]>"
}

func (o *discriminatedSchema) tagOf(m map[string]any, d direction) (any, bool) {
	if d.toDomain() {
		return tagValue(m, o.wireField, d)
	}
	return tagValue(m, o.domainField, d)
}

func (o *discriminatedSchema) selectFor(ctx *sdkschema.Context, v any, d direction) sdkschema.Schema {
	if m, ok := v.(map[string]any); ok {
		if tag, ok := o.tagOf(m, d); ok {
			if s, ok := findTag(o.variants, tag); ok {
				return s
			}
		}
	}
	for i := len(o.variants) - 1; i >= 0; i-- {
		s := o.variants[i].Schema
		if len(validateDir(s, ctx.As(s), v, d)) == 0 {
			return s
		}
	}
	if s, ok := findTag(o.variants, o.defaultKey); ok {
		return s
	}
	return o.variants[len(o.variants)-1].Schema
}

func (o *discriminatedSchema) validate(ctx *sdkschema.Context, v any, d direction) sdkschema.Issues {
	if len(o.variants) == 0 {
		return ctx.Fail(sdkschema.CodeUnionNoMatch, nil)
	}
	s := o.selectFor(ctx, v, d)
	return validateDir(s, ctx.As(s), v, d)
}

func (o *discriminatedSchema) convert(ctx *sdkschema.Context, v any, d direction) any {
	if len(o.variants) == 0 {
		return v
	}
	s := o.selectFor(ctx, v, d)
	return convertDir(s, ctx.As(s), v, d)
}

func (o *discriminatedSchema) ValidateBeforeMap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return o.validate(ctx, v, dirMap)
}

func (o *discriminatedSchema) ValidateBeforeUnmap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return o.validate(ctx, v, dirUnmap)
}

func (o *discriminatedSchema) ValidateBeforeMapXML(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return o.validate(ctx, v, dirMapXML)
}

func (o *discriminatedSchema) Map(ctx *sdkschema.Context, v any) any      { return o.convert(ctx, v, dirMap) }
func (o *discriminatedSchema) Unmap(ctx *sdkschema.Context, v any) any    { return o.convert(ctx, v, dirUnmap) }
func (o *discriminatedSchema) MapXML(ctx *sdkschema.Context, v any) any   { return o.convert(ctx, v, dirMapXML) }
func (o *discriminatedSchema) UnmapXML(ctx *sdkschema.Context, v any) any { return o.convert(ctx, v, dirUnmapXML) }

func (o *discriminatedSchema) ToJSONSchema(gc *sdkschema.GenContext) *js.Schema {
	branches := make([]*js.Schema, len(o.variants))
	for i, v := range o.variants {
		branches[i] = js.RefTo(gc.Named(unwrapLazy(v.Schema)))
	}
	return &js.Schema{OneOf: branches, Discriminator: discriminatorOf(gc, o.wireField, o.variants)}
}
