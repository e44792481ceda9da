package dsl

import (
	sdkschema "github.com/reoring/sdkschema"
)

// FieldSpec declares one object field: the domain name it maps to, the wire
// name it is read from and the schema of its value. XMLName and Attr choose
// where the field lives in an XML element tree.
type FieldSpec struct {
	Domain  string
	Wire    string
	Schema  sdkschema.Schema
	XMLName string
	Attr    bool
}

func (f FieldSpec) xmlName() string {
	if f.XMLName != "" {
		return f.XMLName
	}
	return f.Wire
}

// FieldOpt adjusts the XML placement of a field.
type FieldOpt func(*FieldSpec)

// XMLAttr reads and writes the field as an attribute of the enclosing element.
func XMLAttr() FieldOpt { return func(f *FieldSpec) { f.Attr = true } }

// XMLName overrides the element or attribute name (the wire name by default).
func XMLName(name string) FieldOpt { return func(f *FieldSpec) { f.XMLName = name } }

// Field declares a field mapped from wire key wire to domain key domain.
func Field(domain, wire string, s sdkschema.Schema, opts ...FieldOpt) FieldSpec {
	f := FieldSpec{Domain: domain, Wire: wire, Schema: s}
	for _, fn := range opts {
		fn(&f)
	}
	return f
}

// Object ignores undeclared keys in both directions.
func Object(fields ...FieldSpec) *ObjectSchema {
	return newObject("Object", UnknownStrip, mergeFields(nil, fields))
}

// StrictObject reports undeclared keys as unknown_key issues.
func StrictObject(fields ...FieldSpec) *ObjectSchema {
	return newObject("StrictObject", UnknownStrict, mergeFields(nil, fields))
}

// ExpandoObject copies undeclared keys through unchanged.
func ExpandoObject(fields ...FieldSpec) *ObjectSchema {
	return newObject("ExpandoObject", UnknownPassthrough, mergeFields(nil, fields))
}

// TypedExpandoObject collects undeclared wire keys whose value satisfies elem
// into the domain field bucket (a map[string]any). Entries failing elem are
// dropped. Unmapping spreads the bucket back onto the wire object.
func TypedExpandoObject(bucket string, elem sdkschema.Schema, fields ...FieldSpec) *ObjectSchema {
	return newTypedExpando(bucket, elem, mergeFields(nil, fields))
}

// ExtendObject builds an Object from the fields of parent followed by fields.
// A field whose domain name is already declared by parent replaces it.
func ExtendObject(parent *ObjectSchema, fields ...FieldSpec) *ObjectSchema {
	return newObject("Object", UnknownStrip, mergeFields(parent.fields, fields))
}

// ExtendStrictObject is ExtendObject producing a StrictObject.
func ExtendStrictObject(parent *ObjectSchema, fields ...FieldSpec) *ObjectSchema {
	return newObject("StrictObject", UnknownStrict, mergeFields(parent.fields, fields))
}

// ExtendExpandoObject is ExtendObject producing an ExpandoObject.
func ExtendExpandoObject(parent *ObjectSchema, fields ...FieldSpec) *ObjectSchema {
	return newObject("ExpandoObject", UnknownPassthrough, mergeFields(parent.fields, fields))
}

// ExtendTypedExpandoObject is ExtendObject producing a TypedExpandoObject.
func ExtendTypedExpandoObject(parent *ObjectSchema, bucket string, elem sdkschema.Schema, fields ...FieldSpec) *ObjectSchema {
	return newTypedExpando(bucket, elem, mergeFields(parent.fields, fields))
}

func newTypedExpando(bucket string, elem sdkschema.Schema, fields []FieldSpec) *ObjectSchema {
	o := newObject("TypedExpandoObject", UnknownTyped, fields)
	o.bucket = bucket
	o.elem = elem
	return o
}

// mergeFields returns base followed by extra. An extra field sharing a domain
// name with a base field takes its position. Inputs are never modified.
func mergeFields(base, extra []FieldSpec) []FieldSpec {
	out := make([]FieldSpec, 0, len(base)+len(extra))
	pos := make(map[string]int, len(base)+len(extra))
	for _, group := range [][]FieldSpec{base, extra} {
		for _, f := range group {
			if i, ok := pos[f.Domain]; ok {
				out[i] = f
				continue
			}
			pos[f.Domain] = len(out)
			out = append(out, f)
		}
	}
	return out
}
