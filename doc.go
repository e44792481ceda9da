// Package sdkschema is the schema validation and mapping engine used by
// generated REST API client SDKs.
//
// A schema is declared once by composing the combinators of package dsl and
// then used at call time through four drivers:
//
//   - ValidateAndMap / ValidateAndUnmap: JSON-shaped wire values <-> domain values
//   - ValidateAndMapXML / ValidateAndUnmapXML: XML element trees <-> domain values
//
// Each driver creates a root Context, validates, and only maps when validation
// produced no Issues. GenerateJSONSchema describes a schema as a JSON Schema
// 2020-12 document, turning recursive schemas into $ref indirections.
//
// Layout:
//   - dsl/: primitives, modifiers, objects, unions, lazy, array and dict schemas.
//   - jsonschema/: the exported document model and YAML rendering.
//   - source/: JSON (goccy/go-json), YAML and XML codecs for wire values.
//   - i18n/: issue message templates.
//
// Typical usage:
//
//	user := dsl.Object(
//	    dsl.Field("id", "user_id", dsl.String()),
//	    dsl.Field("age", "user_age", dsl.Number()),
//	)
//	v, err := sdkschema.MapJSON([]byte(`{"user_id":"a1","user_age":"30"}`), user)
//	// v == map[string]any{"id": "a1", "age": 30.0}
//	if iss, ok := sdkschema.AsIssues(err); ok {
//	    _ = iss[0].Pointer()
//	}
package sdkschema
