package dsl

import (
	"strings"

	sdkschema "github.com/reoring/sdkschema"
	js "github.com/reoring/sdkschema/jsonschema"
)

type arraySchema struct{ elem sdkschema.Schema }

// Array maps []any element-wise through elem. In XML a repeated element
// decodes to a list while a single occurrence decodes to the bare value, so
// a non-list value is taken as a one-element list there.
func Array(elem sdkschema.Schema) sdkschema.Schema { return &arraySchema{elem: elem} }

func (a *arraySchema) TypeName() string { return a.typeNameSeen(nil) }

func (a *arraySchema) typeNameSeen(seen map[*lazySchema]bool) string {
	return "Array<" + nameOf(a.elem, seen) + ">"
}

func asList(v any, d direction) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case nil:
		return nil, false
	case string:
		if d == dirMapXML && strings.TrimSpace(t) == "" {
			return []any{}, true
		}
	}
	if d == dirMapXML {
		return []any{v}, true
	}
	return nil, false
}

func (a *arraySchema) validate(ctx *sdkschema.Context, v any, d direction) sdkschema.Issues {
	items, ok := asList(v, d)
	if !ok {
		return ctx.Mismatch()
	}
	var iss sdkschema.Issues
	for i, item := range items {
		iss = append(iss, validateDir(a.elem, ctx.CreateChild(i, item, a.elem), item, d)...)
	}
	return iss
}

func (a *arraySchema) convert(ctx *sdkschema.Context, v any, d direction) any {
	items, _ := asList(v, d)
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = convertDir(a.elem, ctx.CreateChild(i, item, a.elem), item, d)
	}
	return out
}

func (a *arraySchema) ValidateBeforeMap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return a.validate(ctx, v, dirMap)
}

func (a *arraySchema) ValidateBeforeUnmap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return a.validate(ctx, v, dirUnmap)
}

func (a *arraySchema) ValidateBeforeMapXML(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return a.validate(ctx, v, dirMapXML)
}

func (a *arraySchema) Map(ctx *sdkschema.Context, v any) any      { return a.convert(ctx, v, dirMap) }
func (a *arraySchema) Unmap(ctx *sdkschema.Context, v any) any    { return a.convert(ctx, v, dirUnmap) }
func (a *arraySchema) MapXML(ctx *sdkschema.Context, v any) any   { return a.convert(ctx, v, dirMapXML) }
func (a *arraySchema) UnmapXML(ctx *sdkschema.Context, v any) any { return a.convert(ctx, v, dirUnmapXML) }

func (a *arraySchema) ToJSONSchema(gc *sdkschema.GenContext) *js.Schema {
	return &js.Schema{Type: "array", Items: gc.Generate(a.elem)}
}
