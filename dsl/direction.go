package dsl

import (
	"strconv"
	"strings"

	sdkschema "github.com/reoring/sdkschema"
)

// direction selects which half of the Schema contract a shared code path runs.
type direction int

const (
	dirMap direction = iota
	dirUnmap
	dirMapXML
	dirUnmapXML
)

func (d direction) xml() bool { return d == dirMapXML || d == dirUnmapXML }

func (d direction) toDomain() bool { return d == dirMap || d == dirMapXML }

func validateDir(s sdkschema.Schema, ctx *sdkschema.Context, v any, d direction) sdkschema.Issues {
	switch d {
	case dirMap:
		return s.ValidateBeforeMap(ctx, v)
	case dirMapXML:
		return s.ValidateBeforeMapXML(ctx, v)
	default:
		return s.ValidateBeforeUnmap(ctx, v)
	}
}

func convertDir(s sdkschema.Schema, ctx *sdkschema.Context, v any, d direction) any {
	switch d {
	case dirMap:
		return s.Map(ctx, v)
	case dirUnmap:
		return s.Unmap(ctx, v)
	case dirMapXML:
		return s.MapXML(ctx, v)
	default:
		return s.UnmapXML(ctx, v)
	}
}

// nestedNamer renders a type name while tracking the lazy schemas already
// being named, so self-referential graphs terminate.
type nestedNamer interface {
	typeNameSeen(seen map[*lazySchema]bool) string
}

func nameOf(s sdkschema.Schema, seen map[*lazySchema]bool) string {
	if n, ok := s.(nestedNamer); ok {
		return n.typeNameSeen(seen)
	}
	return s.TypeName()
}

func joinNames(schemas []sdkschema.Schema, seen map[*lazySchema]bool, sep string) string {
	names := make([]string, len(schemas))
	for i, s := range schemas {
		names[i] = nameOf(s, seen)
	}
	return strings.Join(names, sep)
}

// quoteKeys renders keys as "a", "b" for issue messages.
func quoteKeys(keys []string) string {
	q := make([]string, len(keys))
	for i, k := range keys {
		q[i] = strconv.Quote(k)
	}
	return strings.Join(q, ", ")
}
