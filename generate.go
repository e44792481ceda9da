package sdkschema

import (
	"reflect"
	"strconv"

	js "github.com/reoring/sdkschema/jsonschema"
)

// GenContext is the state of one JSON Schema generation: the root schema, the
// ordered list of named definitions and the identity registry that turns
// shared or recursive sub-schemas into $ref indirections.
type GenContext struct {
	root         Schema
	rootExpanded bool
	names        map[Schema]string
	defs         []definition
}

type definition struct {
	name string
	body *js.Schema
}

// GenerateJSONSchema describes s as a JSON Schema 2020-12 document. $defs is
// present only when at least one definition was registered.
func GenerateJSONSchema(s Schema) *js.Schema {
	gc := &GenContext{root: s, names: map[Schema]string{}}
	out := *gc.Generate(s)
	out.Dialect = js.Draft2020
	if len(gc.defs) > 0 {
		out.Defs = make(map[string]*js.Schema, len(gc.defs))
		for _, d := range gc.defs {
			out.Defs[d.name] = d.body
		}
	}
	return &out
}

// Generate emits s, or the empty schema when s cannot describe itself.
func (gc *GenContext) Generate(s Schema) *js.Schema {
	if g, ok := s.(JSONSchemaer); ok {
		if out := g.ToJSONSchema(gc); out != nil {
			return out
		}
	}
	return &js.Schema{}
}

// EnterRoot reports whether s is the root being generated and has not been
// expanded yet, marking it expanded. Recursive schemas use it to emit the
// root body once and "#" references afterwards.
func (gc *GenContext) EnterRoot(s Schema) bool {
	if !gc.IsRoot(s) || gc.rootExpanded {
		return false
	}
	gc.rootExpanded = true
	return true
}

// IsRoot reports whether s is the schema passed to GenerateJSONSchema.
func (gc *GenContext) IsRoot(s Schema) bool {
	return hashable(s) && hashable(gc.root) && s == gc.root
}

// Lookup returns the definition name assigned to s.
func (gc *GenContext) Lookup(s Schema) (string, bool) {
	if !hashable(s) {
		return "", false
	}
	name, ok := gc.names[s]
	return name, ok
}

// Register reserves the next definition name (schema1, schema2, ...) for s.
// The body is attached later with Define so that recursive references to s
// made while generating it resolve to the reserved name.
func (gc *GenContext) Register(s Schema) string {
	name := "schema" + strconv.Itoa(len(gc.defs)+1)
	gc.defs = append(gc.defs, definition{name: name})
	if hashable(s) {
		gc.names[s] = name
	}
	return name
}

// Define attaches the body of a registered definition.
func (gc *GenContext) Define(name string, body *js.Schema) {
	for i := range gc.defs {
		if gc.defs[i].name == name {
			gc.defs[i].body = body
			return
		}
	}
	gc.defs = append(gc.defs, definition{name: name, body: body})
}

// Named returns the definition name of s, registering and generating it on
// first use.
func (gc *GenContext) Named(s Schema) string {
	if name, ok := gc.Lookup(s); ok {
		return name
	}
	name := gc.Register(s)
	gc.Define(name, gc.Generate(s))
	return name
}

// Definitions returns the registered definition names in registration order.
func (gc *GenContext) Definitions() []string {
	out := make([]string, len(gc.defs))
	for i, d := range gc.defs {
		out[i] = d.name
	}
	return out
}

func hashable(s Schema) bool {
	return s != nil && reflect.TypeOf(s).Comparable()
}
