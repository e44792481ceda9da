package dsl

import (
	"sort"

	sdkschema "github.com/reoring/sdkschema"
	js "github.com/reoring/sdkschema/jsonschema"
)

type dictSchema struct{ elem sdkschema.Schema }

// Dict maps map[string]any value-wise through elem; keys are kept as is.
func Dict(elem sdkschema.Schema) sdkschema.Schema { return &dictSchema{elem: elem} }

func (m *dictSchema) TypeName() string { return m.typeNameSeen(nil) }

func (m *dictSchema) typeNameSeen(seen map[*lazySchema]bool) string {
	return "Dict<" + nameOf(m.elem, seen) + ">"
}

// sortedKeys returns keys in ascending order for deterministic issue order.
func sortedKeys(src map[string]any) []string {
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *dictSchema) validate(ctx *sdkschema.Context, v any, d direction) sdkschema.Issues {
	src, ok := asObject(v, d)
	if !ok {
		return ctx.Mismatch()
	}
	var iss sdkschema.Issues
	for _, k := range sortedKeys(src) {
		val := src[k]
		iss = append(iss, validateDir(m.elem, ctx.CreateChild(k, val, m.elem), val, d)...)
	}
	return iss
}

func (m *dictSchema) convert(ctx *sdkschema.Context, v any, d direction) any {
	src, _ := asObject(v, d)
	out := make(map[string]any, len(src))
	for k, val := range src {
		out[k] = convertDir(m.elem, ctx.CreateChild(k, val, m.elem), val, d)
	}
	return out
}

func (m *dictSchema) ValidateBeforeMap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return m.validate(ctx, v, dirMap)
}

func (m *dictSchema) ValidateBeforeUnmap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return m.validate(ctx, v, dirUnmap)
}

func (m *dictSchema) ValidateBeforeMapXML(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return m.validate(ctx, v, dirMapXML)
}

func (m *dictSchema) Map(ctx *sdkschema.Context, v any) any      { return m.convert(ctx, v, dirMap) }
func (m *dictSchema) Unmap(ctx *sdkschema.Context, v any) any    { return m.convert(ctx, v, dirUnmap) }
func (m *dictSchema) MapXML(ctx *sdkschema.Context, v any) any   { return m.convert(ctx, v, dirMapXML) }
func (m *dictSchema) UnmapXML(ctx *sdkschema.Context, v any) any { return m.convert(ctx, v, dirUnmapXML) }

func (m *dictSchema) ToJSONSchema(gc *sdkschema.GenContext) *js.Schema {
	return &js.Schema{Type: "object", AdditionalProperties: gc.Generate(m.elem)}
}
