package sdkschema

import js "github.com/reoring/sdkschema/jsonschema"

// Schema validates and converts between a wire value (JSON- or XML-shaped,
// loosely typed) and a domain value.
//
// Validation methods never mutate their input and return the collected issues
// (nil when valid). Map and Unmap assume the matching validation already
// passed; their result on invalid input is unspecified.
type Schema interface {
	// TypeName is the canonical type descriptor, e.g. Object<{id,age}> or
	// OneOf<string | number>.
	TypeName() string

	ValidateBeforeMap(ctx *Context, v any) Issues
	ValidateBeforeUnmap(ctx *Context, v any) Issues
	Map(ctx *Context, v any) any
	Unmap(ctx *Context, v any) any

	// XML flavour: same domain value, wire values shaped as element trees where
	// attributes live under the "$" key.
	ValidateBeforeMapXML(ctx *Context, v any) Issues
	MapXML(ctx *Context, v any) any
	UnmapXML(ctx *Context, v any) any
}

// JSONSchemaer is implemented by schemas that can describe themselves as JSON
// Schema. Schemas without it are exported as the empty schema.
type JSONSchemaer interface {
	ToJSONSchema(gc *GenContext) *js.Schema
}
