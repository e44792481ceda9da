package dsl

import (
	"sort"
	"strings"

	sdkschema "github.com/reoring/sdkschema"
	js "github.com/reoring/sdkschema/jsonschema"
	"github.com/reoring/sdkschema/source"
)

// UnknownPolicy selects how an object treats keys it does not declare.
type UnknownPolicy int

const (
	// UnknownStrict reports undeclared keys as an unknown_key issue.
	UnknownStrict UnknownPolicy = iota
	// UnknownStrip drops undeclared keys silently.
	UnknownStrip
	// UnknownPassthrough copies undeclared keys through verbatim.
	UnknownPassthrough
	// UnknownTyped routes undeclared keys that satisfy the element schema into
	// a bucket field and drops the others.
	UnknownTyped
)

// ObjectSchema maps a declared set of fields between wire and domain names.
// Build it with Object, StrictObject, ExpandoObject, TypedExpandoObject or
// one of the Extend variants.
type ObjectSchema struct {
	kind   string
	fields []FieldSpec
	pres   []presence
	policy UnknownPolicy
	bucket string
	elem   sdkschema.Schema

	wireKeys   map[string]struct{}
	xmlKeys    map[string]struct{}
	domainKeys map[string]struct{}
}

var _ sdkschema.Schema = (*ObjectSchema)(nil)

func newObject(kind string, policy UnknownPolicy, fields []FieldSpec) *ObjectSchema {
	o := &ObjectSchema{
		kind:       kind,
		fields:     fields,
		pres:       make([]presence, len(fields)),
		policy:     policy,
		wireKeys:   make(map[string]struct{}, len(fields)),
		xmlKeys:    map[string]struct{}{source.XMLAttrKey: {}, source.XMLTextKey: {}},
		domainKeys: make(map[string]struct{}, len(fields)),
	}
	for i, f := range fields {
		o.pres[i] = presenceOf(f.Schema)
		o.wireKeys[f.Wire] = struct{}{}
		o.domainKeys[f.Domain] = struct{}{}
		if !f.Attr {
			o.xmlKeys[f.xmlName()] = struct{}{}
		}
	}
	return o
}

// Fields returns the declared fields in declaration order.
func (o *ObjectSchema) Fields() []FieldSpec { return append([]FieldSpec(nil), o.fields...) }

// Policy reports how undeclared keys are handled.
func (o *ObjectSchema) Policy() UnknownPolicy { return o.policy }

func (o *ObjectSchema) TypeName() string {
	names := make([]string, len(o.fields))
	for i, f := range o.fields {
		names[i] = f.Domain
	}
	return o.kind + "<{" + strings.Join(names, ",") + "}>"
}

func (o *ObjectSchema) ValidateBeforeMap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return o.validate(ctx, v, dirMap)
}

func (o *ObjectSchema) ValidateBeforeUnmap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return o.validate(ctx, v, dirUnmap)
}

func (o *ObjectSchema) ValidateBeforeMapXML(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return o.validate(ctx, v, dirMapXML)
}

func (o *ObjectSchema) Map(ctx *sdkschema.Context, v any) any      { return o.convert(ctx, v, dirMap) }
func (o *ObjectSchema) Unmap(ctx *sdkschema.Context, v any) any    { return o.convert(ctx, v, dirUnmap) }
func (o *ObjectSchema) MapXML(ctx *sdkschema.Context, v any) any   { return o.convert(ctx, v, dirMapXML) }
func (o *ObjectSchema) UnmapXML(ctx *sdkschema.Context, v any) any { return o.convert(ctx, v, dirUnmapXML) }

// asObject accepts map[string]any; an empty XML element ("") is an empty object.
func asObject(v any, d direction) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case string:
		if d == dirMapXML && strings.TrimSpace(t) == "" {
			return map[string]any{}, true
		}
	}
	return nil, false
}

// sourceKey is the key a field is read from in direction d.
func sourceKey(f FieldSpec, d direction) string {
	switch d {
	case dirMap:
		return f.Wire
	case dirMapXML:
		return f.xmlName()
	}
	return f.Domain
}

func lookup(src map[string]any, f FieldSpec, d direction) (any, bool) {
	if d == dirMapXML && f.Attr {
		attrs, _ := src[source.XMLAttrKey].(map[string]any)
		v, ok := attrs[f.xmlName()]
		return v, ok
	}
	v, ok := src[sourceKey(f, d)]
	return v, ok
}

func store(dst map[string]any, f FieldSpec, d direction, v any) {
	switch d {
	case dirMap, dirMapXML:
		dst[f.Domain] = v
	case dirUnmap:
		dst[f.Wire] = v
	case dirUnmapXML:
		if f.Attr {
			attrs, _ := dst[source.XMLAttrKey].(map[string]any)
			if attrs == nil {
				attrs = map[string]any{}
				dst[source.XMLAttrKey] = attrs
			}
			attrs[f.xmlName()] = v
			return
		}
		dst[f.xmlName()] = v
	}
}

// unknownKeys returns the undeclared keys of src in ascending order.
func (o *ObjectSchema) unknownKeys(src map[string]any, d direction) []string {
	known := o.domainKeys
	switch d {
	case dirMap:
		known = o.wireKeys
	case dirMapXML:
		known = o.xmlKeys
	}
	var out []string
	for k := range src {
		if _, ok := known[k]; ok {
			continue
		}
		if o.policy == UnknownTyped && !d.toDomain() && k == o.bucket {
			continue
		}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (o *ObjectSchema) validate(ctx *sdkschema.Context, v any, d direction) sdkschema.Issues {
	src, ok := asObject(v, d)
	if !ok {
		return ctx.Mismatch()
	}
	var iss sdkschema.Issues
	var missing []string
	for i, f := range o.fields {
		val, present := lookup(src, f, d)
		if o.pres[i].decide(val, present) != emitDelegate {
			continue
		}
		key := sourceKey(f, d)
		if !present {
			missing = append(missing, key)
			continue
		}
		child := ctx.CreateChild(key, val, f.Schema)
		iss = append(iss, validateDir(f.Schema, child, val, d)...)
	}
	if len(missing) > 0 {
		iss = append(iss, ctx.Fail(sdkschema.CodeRequired, map[string]string{"keys": quoteKeys(missing)})...)
	}
	switch o.policy {
	case UnknownStrict:
		if unknown := o.unknownKeys(src, d); len(unknown) > 0 {
			iss = append(iss, ctx.Fail(sdkschema.CodeUnknownKey, map[string]string{"keys": quoteKeys(unknown)})...)
		}
	case UnknownTyped:
		if d.toDomain() {
			break
		}
		if b, ok := src[o.bucket]; ok && b != nil {
			if _, isMap := b.(map[string]any); !isMap {
				iss = append(iss, ctx.CreateChild(o.bucket, b, Dict(o.elem)).Mismatch()...)
			}
		}
	}
	return iss
}

func (o *ObjectSchema) convert(ctx *sdkschema.Context, v any, d direction) any {
	src, _ := asObject(v, d)
	out := make(map[string]any, len(o.fields))
	for i, f := range o.fields {
		val, present := lookup(src, f, d)
		switch o.pres[i].decide(val, present) {
		case emitSkip:
		case emitNull:
			store(out, f, d, nil)
		case emitDefault:
			if d.toDomain() {
				store(out, f, d, o.pres[i].def)
			}
		case emitFixed:
			store(out, f, d, o.pres[i].fixedValue)
		default:
			if !present {
				continue
			}
			child := ctx.CreateChild(sourceKey(f, d), val, f.Schema)
			store(out, f, d, convertDir(f.Schema, child, val, d))
		}
	}
	switch o.policy {
	case UnknownPassthrough:
		for _, k := range o.unknownKeys(src, d) {
			if _, taken := out[k]; taken {
				continue
			}
			out[k] = src[k]
		}
	case UnknownTyped:
		o.convertBucket(ctx, src, out, d)
	}
	return out
}

// convertBucket gathers valid overflow entries into the bucket field when
// mapping and spreads the bucket back onto the wire object when unmapping.
// Entries rejected by the element schema are dropped without an issue.
func (o *ObjectSchema) convertBucket(ctx *sdkschema.Context, src, out map[string]any, d direction) {
	if d.toDomain() {
		bucket := map[string]any{}
		for _, k := range o.unknownKeys(src, d) {
			val := src[k]
			child := ctx.CreateChild(k, val, o.elem)
			if len(validateDir(o.elem, child, val, d)) > 0 {
				continue
			}
			bucket[k] = convertDir(o.elem, child, val, d)
		}
		out[o.bucket] = bucket
		return
	}
	bucket, _ := src[o.bucket].(map[string]any)
	keys := make([]string, 0, len(bucket))
	for k := range bucket {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, taken := out[k]; taken {
			continue
		}
		val := bucket[k]
		child := ctx.CreateChild(k, val, o.elem)
		if len(validateDir(o.elem, child, val, d)) > 0 {
			continue
		}
		out[k] = convertDir(o.elem, child, val, d)
	}
}

func (o *ObjectSchema) ToJSONSchema(gc *sdkschema.GenContext) *js.Schema {
	props := make(map[string]*js.Schema, len(o.fields))
	var req []string
	for i, f := range o.fields {
		props[f.Wire] = gc.Generate(f.Schema)
		if !o.pres[i].optional && !o.pres[i].hasDefault {
			req = append(req, f.Wire)
		}
	}
	sort.Strings(req)
	var additional any
	switch o.policy {
	case UnknownStrict:
		additional = false
	case UnknownTyped:
		additional = gc.Generate(o.elem)
	default:
		additional = true
	}
	return &js.Schema{Type: "object", Properties: props, Required: req, AdditionalProperties: additional}
}
