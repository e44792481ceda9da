// Package source converts serialized payloads into wire values accepted by
// sdkschema drivers, and back.
//
// JSON is decoded with goccy/go-json using UseNumber so numbers reach the
// schemas as json.Number and big integers keep their precision. YAML is
// decoded with yaml.v3 and normalized to map[string]any. XML is decoded into
// an element tree where attributes live under the reserved "$" key, text of
// mixed elements under "_", and repeated child elements become []any.
package source
