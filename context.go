package sdkschema

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/reoring/sdkschema/i18n"
	"github.com/reoring/sdkschema/source"
)

// Context carries the in-flight value and its ancestry through one driver
// call. A Context is never mutated after creation; children copy Branch and
// Path.
type Context struct {
	Value            any
	Type             string
	Branch           []any
	Path             []any
	StrictValidation bool
}

// NewContext creates the root context for validating v against s.
func NewContext(v any, s Schema, strict bool) *Context {
	return &Context{Value: v, Type: s.TypeName(), Branch: []any{v}, Path: []any{}, StrictValidation: strict}
}

// CreateChild derives the context of a nested value. key is a string for
// object properties and an int for array indices.
func (c *Context) CreateChild(key any, v any, s Schema) *Context {
	branch := make([]any, len(c.Branch), len(c.Branch)+1)
	copy(branch, c.Branch)
	path := make([]any, len(c.Path), len(c.Path)+1)
	copy(path, c.Path)
	return &Context{
		Value:            v,
		Type:             s.TypeName(),
		Branch:           append(branch, v),
		Path:             append(path, key),
		StrictValidation: c.StrictValidation,
	}
}

// As returns a copy of c describing the same value as seen by s. Unions and
// discriminated objects use it when delegating to the selected schema.
func (c *Context) As(s Schema) *Context {
	cp := *c
	cp.Type = s.TypeName()
	return &cp
}

// WithStrict returns a copy of c with StrictValidation set to strict.
func (c *Context) WithStrict(strict bool) *Context {
	if c.StrictValidation == strict {
		return c
	}
	cp := *c
	cp.StrictValidation = strict
	return &cp
}

// Fail builds a single issue for the current value. data feeds the message
// template of code; "expected" and "actual" are filled in when absent.
func (c *Context) Fail(code string, data map[string]string) Issues {
	d := map[string]string{"expected": c.Type, "actual": TypeOf(c.Value)}
	for k, v := range data {
		d[k] = v
	}
	return Issues{{
		Code:    code,
		Message: c.describe(i18n.T(code, d)),
		Value:   c.Value,
		Type:    c.Type,
		Branch:  c.Branch,
		Path:    c.Path,
	}}
}

// Mismatch reports that the current value does not have the expected type.
func (c *Context) Mismatch() Issues { return c.Fail(CodeInvalidType, nil) }

func (c *Context) describe(msg string) string {
	b := &strings.Builder{}
	b.WriteString(msg)
	fmt.Fprintf(b, "\n\n%s: %s", i18n.T("given_value", nil), Serialize(c.Value))
	fmt.Fprintf(b, "\n%s: '%s'", i18n.T("type", nil), TypeOf(c.Value))
	fmt.Fprintf(b, "\n%s: '%s'", i18n.T("expected_type", nil), c.Type)
	if len(c.Path) > 0 {
		fmt.Fprintf(b, "\n%s: %s", i18n.T("path", nil), breadcrumb(c.Path))
	}
	return b.String()
}

// Serialize renders v as JSON for diagnostics. Big integers and json.Number
// values are written exactly.
func Serialize(v any) string {
	b, err := source.EncodeJSON(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// TypeOf names the run-time kind of a wire or domain value using JSON terms.
func TypeOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case *big.Int:
		return "bigint"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Bool:
		return "boolean"
	}
	return fmt.Sprintf("%T", v)
}
