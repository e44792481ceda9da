package jsonschema

// Draft2020 is the dialect identifier written into generated documents.
const Draft2020 = "https://json-schema.org/draft/2020-12/schema"

// Schema is a JSON Schema representation used for export. Keep it small and
// extend incrementally.
type Schema struct {
	// Document
	Dialect string             `json:"$schema,omitempty"`
	Ref     string             `json:"$ref,omitempty"`
	Defs    map[string]*Schema `json:"$defs,omitempty"`

	// Core
	Type    string `json:"type,omitempty"`
	Format  string `json:"format,omitempty"`
	Const   any    `json:"const,omitempty"`
	Enum    []any  `json:"enum,omitempty"`
	Default any    `json:"default,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Union
	OneOf         []*Schema      `json:"oneOf,omitempty"`
	AnyOf         []*Schema      `json:"anyOf,omitempty"`
	Discriminator *Discriminator `json:"discriminator,omitempty"`
}

// Discriminator is the OpenAPI 3.1 vendor keyword naming the tag property and
// mapping tag values to $ref targets.
type Discriminator struct {
	PropertyName string            `json:"propertyName"`
	Mapping      map[string]string `json:"mapping,omitempty"`
}

// RefTo returns a schema holding only a $ref to the named definition.
func RefTo(name string) *Schema { return &Schema{Ref: DefRef(name)} }

// DefRef renders the JSON Pointer of a named definition.
func DefRef(name string) string { return "#/$defs/" + name }

// Null is the schema of the JSON null value.
func Null() *Schema { return &Schema{Type: "null"} }
