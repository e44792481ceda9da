package sdkschema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType    = "invalid_type"
	CodeRequired       = "required"
	CodeUnknownKey     = "unknown_key"
	CodeUnionAmbiguous = "union_ambiguous"
	CodeUnionNoMatch   = "union_no_match"
)

// ErrValidation is matched by every Issues value through errors.Is.
var ErrValidation = errors.New("sdkschema: validation failed")

// Issue represents a single schema validation error.
type Issue struct {
	Code    string // One of the codes listed above.
	Message string
	// Value is the offending value as it was seen by the failing schema.
	Value any
	// Type is the type name of the schema that rejected Value.
	Type string
	// Branch holds the ancestor values, root first, ending with Value.
	Branch []any
	// Path holds the keys (string) and indices (int) leading from the root to Value.
	Path []any
}

// Pointer renders Path as a JSON Pointer (for example: /items/2/price).
func (it Issue) Pointer() string {
	p := Root()
	for _, k := range it.Path {
		switch t := k.(type) {
		case int:
			p = p.Index(t)
		default:
			p = p.Field(fmt.Sprint(t))
		}
	}
	return p.Pointer()
}

// Breadcrumb renders Path for humans: "user › tags › 0".
func (it Issue) Breadcrumb() string { return breadcrumb(it.Path) }

func breadcrumb(path []any) string {
	parts := make([]string, len(path))
	for i, k := range path {
		parts[i] = fmt.Sprint(k)
	}
	return strings.Join(parts, " › ")
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /user_age
		fmt.Fprintf(b, "%s at %s", it.Code, it.Pointer())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is reports whether target is ErrValidation.
func (iss Issues) Is(target error) bool { return target == ErrValidation }

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
