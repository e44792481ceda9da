package dsl

import (
	"sync"

	sdkschema "github.com/reoring/sdkschema"
	js "github.com/reoring/sdkschema/jsonschema"
)

type lazySchema struct {
	once    sync.Once
	factory func() sdkschema.Schema
	inner   sdkschema.Schema
}

// Lazy defers construction of a schema until first use, allowing recursive
// schema graphs. factory runs at most once, also under concurrent use.
func Lazy(factory func() sdkschema.Schema) sdkschema.Schema {
	return &lazySchema{factory: factory}
}

func (l *lazySchema) get() sdkschema.Schema {
	l.once.Do(func() { l.inner = l.factory() })
	return l.inner
}

func (l *lazySchema) TypeName() string { return l.typeNameSeen(nil) }

func (l *lazySchema) typeNameSeen(seen map[*lazySchema]bool) string {
	if seen[l] {
		return "Lazy"
	}
	if seen == nil {
		seen = map[*lazySchema]bool{}
	}
	seen[l] = true
	defer delete(seen, l)
	return nameOf(l.get(), seen)
}

func (l *lazySchema) ValidateBeforeMap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return l.get().ValidateBeforeMap(ctx, v)
}

func (l *lazySchema) ValidateBeforeUnmap(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return l.get().ValidateBeforeUnmap(ctx, v)
}

func (l *lazySchema) ValidateBeforeMapXML(ctx *sdkschema.Context, v any) sdkschema.Issues {
	return l.get().ValidateBeforeMapXML(ctx, v)
}

func (l *lazySchema) Map(ctx *sdkschema.Context, v any) any      { return l.get().Map(ctx, v) }
func (l *lazySchema) Unmap(ctx *sdkschema.Context, v any) any    { return l.get().Unmap(ctx, v) }
func (l *lazySchema) MapXML(ctx *sdkschema.Context, v any) any   { return l.get().MapXML(ctx, v) }
func (l *lazySchema) UnmapXML(ctx *sdkschema.Context, v any) any { return l.get().UnmapXML(ctx, v) }

// ToJSONSchema expands the root once and refers back to it with "#"; any
// other recursive target becomes a $defs entry.
func (l *lazySchema) ToJSONSchema(gc *sdkschema.GenContext) *js.Schema {
	inner := l.get()
	if gc.EnterRoot(l) {
		return gc.Generate(inner)
	}
	if gc.IsRoot(l) || gc.IsRoot(inner) {
		return &js.Schema{Ref: "#"}
	}
	return js.RefTo(gc.Named(inner))
}

// unwrapLazy forces lazy wrappers until a concrete schema is reached.
func unwrapLazy(s sdkschema.Schema) sdkschema.Schema {
	for {
		l, ok := s.(*lazySchema)
		if !ok {
			return s
		}
		s = l.get()
	}
}
