package dsl_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkschema "github.com/reoring/sdkschema"
	g "github.com/reoring/sdkschema/dsl"
)

func userFields() []g.FieldSpec {
	return []g.FieldSpec{
		g.Field("id", "user_id", g.String()),
		g.Field("age", "user_age", g.Number()),
	}
}

func TestObject_MapAndUnmap(t *testing.T) {
	user := g.Object(userFields()...)
	assert.Equal(t, "Object<{id,age}>", user.TypeName())

	got := mustMap(t, user, map[string]any{"user_id": "abc", "user_age": json.Number("30")})
	assert.Equal(t, map[string]any{"id": "abc", "age": 30.0}, got)

	got = mustMap(t, user, map[string]any{"user_id": "abc", "user_age": "30"})
	assert.Equal(t, map[string]any{"id": "abc", "age": 30.0}, got)

	back := mustUnmap(t, user, map[string]any{"id": "abc", "age": 30.0})
	assert.Equal(t, map[string]any{"user_id": "abc", "user_age": 30.0}, back)
}

func TestObject_MissingFieldIsSingleIssue(t *testing.T) {
	user := g.Object(userFields()...)

	_, err := sdkschema.ValidateAndMap(map[string]any{"user_id": "abc"}, user)
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, sdkschema.CodeRequired, iss[0].Code)
	assert.Contains(t, iss[0].Message, `"user_age"`)
	assert.Equal(t, "Object<{id,age}>", iss[0].Type)
}

func TestObject_AggregatesIssues(t *testing.T) {
	user := g.Object(userFields()...)

	_, err := sdkschema.ValidateAndMap(map[string]any{}, user)
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Contains(t, iss[0].Message, `Some properties are missing in the object: "user_id", "user_age".`)

	_, err = sdkschema.ValidateAndMap(map[string]any{"user_id": 1, "user_age": "x"}, user)
	iss = issuesOf(t, err)
	require.Len(t, iss, 2)
	assert.Equal(t, "/user_id", iss[0].Pointer())
	assert.Equal(t, "/user_age", iss[1].Pointer())
	assert.Equal(t, "string", iss[0].Type)
	assert.Equal(t, "number", iss[1].Type)
}

func TestObject_NotAnObject(t *testing.T) {
	_, err := sdkschema.ValidateAndMap([]any{}, g.Object(userFields()...))
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, sdkschema.CodeInvalidType, iss[0].Code)
	assert.Contains(t, iss[0].Message, "found 'array'")
}

func TestObject_NestedPath(t *testing.T) {
	order := g.Object(
		g.Field("items", "line_items", g.Array(g.Object(g.Field("price", "unit_price", g.Number())))),
	)
	in := map[string]any{"line_items": []any{
		map[string]any{"unit_price": 1},
		map[string]any{"unit_price": "free"},
	}}

	_, err := sdkschema.ValidateAndMap(in, order)
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	it := iss[0]
	assert.Equal(t, []any{"line_items", 1, "unit_price"}, it.Path)
	assert.Equal(t, "/line_items/1/unit_price", it.Pointer())
	assert.Equal(t, "line_items › 1 › unit_price", it.Breadcrumb())
	assert.Contains(t, it.Message, "Path: line_items › 1 › unit_price")
	require.Len(t, it.Branch, 4)
	assert.Equal(t, in, it.Branch[0])
	assert.Equal(t, "free", it.Branch[3])
}

func TestObject_UnknownKeys(t *testing.T) {
	in := map[string]any{"user_id": "abc", "user_age": 1, "zeta": true, "alpha": "x"}

	t.Run("default drops", func(t *testing.T) {
		s := g.Object(userFields()...)
		assert.Equal(t, map[string]any{"id": "abc", "age": 1.0}, mustMap(t, s, in))
		back := mustUnmap(t, s, map[string]any{"id": "abc", "age": 1.0, "extra": 1})
		assert.Equal(t, map[string]any{"user_id": "abc", "user_age": 1.0}, back)
	})

	t.Run("strict reports once", func(t *testing.T) {
		s := g.StrictObject(userFields()...)
		_, err := sdkschema.ValidateAndMap(in, s)
		iss := issuesOf(t, err)
		require.Len(t, iss, 1)
		assert.Equal(t, sdkschema.CodeUnknownKey, iss[0].Code)
		assert.Contains(t, iss[0].Message, `Some unknown properties were found in the object: "alpha", "zeta".`)

		_, err = sdkschema.ValidateAndUnmap(map[string]any{"id": "abc", "age": 1.0, "user_id": "x"}, s)
		iss = issuesOf(t, err)
		require.Len(t, iss, 1)
		assert.Equal(t, sdkschema.CodeUnknownKey, iss[0].Code)
	})

	t.Run("strict aggregates with field issues", func(t *testing.T) {
		s := g.StrictObject(userFields()...)
		_, err := sdkschema.ValidateAndMap(map[string]any{"user_age": "x", "other": 1}, s)
		iss := issuesOf(t, err)
		require.Len(t, iss, 3)
		assert.Equal(t, sdkschema.CodeInvalidType, iss[0].Code)
		assert.Equal(t, sdkschema.CodeRequired, iss[1].Code)
		assert.Equal(t, sdkschema.CodeUnknownKey, iss[2].Code)
	})

	t.Run("expando copies", func(t *testing.T) {
		s := g.ExpandoObject(userFields()...)
		got := mustMap(t, s, in)
		assert.Equal(t, map[string]any{"id": "abc", "age": 1.0, "zeta": true, "alpha": "x"}, got)
		back := mustUnmap(t, s, got)
		assert.Equal(t, map[string]any{"user_id": "abc", "user_age": 1.0, "zeta": true, "alpha": "x"}, back)
	})

	t.Run("expando keeps declared fields on collision", func(t *testing.T) {
		s := g.ExpandoObject(g.Field("id", "user_id", g.String()))

		got := mustMap(t, s, map[string]any{"user_id": "declared", "id": "extra"})
		assert.Equal(t, map[string]any{"id": "declared"}, got)

		back := mustUnmap(t, s, map[string]any{"id": "declared", "user_id": "extra"})
		assert.Equal(t, map[string]any{"user_id": "declared"}, back)
	})
}

func TestTypedExpandoObject(t *testing.T) {
	s := g.TypedExpandoObject("labels", g.String(), g.Field("id", "id", g.String()))
	assert.Equal(t, "TypedExpandoObject<{id}>", s.TypeName())

	got := mustMap(t, s, map[string]any{"id": "a", "env": "prod", "size": 5, "team": "core"})
	assert.Equal(t, map[string]any{
		"id":     "a",
		"labels": map[string]any{"env": "prod", "team": "core"},
	}, got)

	back := mustUnmap(t, s, got)
	assert.Equal(t, map[string]any{"id": "a", "env": "prod", "team": "core"}, back)

	back = mustUnmap(t, s, map[string]any{"id": "a", "labels": map[string]any{"id": "clash", "n": 1}})
	assert.Equal(t, map[string]any{"id": "a"}, back)

	_, err := sdkschema.ValidateAndUnmap(map[string]any{"id": "a", "labels": "nope"}, s)
	iss := issuesOf(t, err)
	assert.Equal(t, []any{"labels"}, iss[0].Path)
	assert.Equal(t, "Dict<string>", iss[0].Type)
}

func TestExtendObject(t *testing.T) {
	base := g.Object(
		g.Field("id", "id", g.String()),
		g.Field("name", "name", g.String()),
	)
	child := g.ExtendStrictObject(base,
		g.Field("name", "full_name", g.String()),
		g.Field("age", "age", g.Number()),
	)

	assert.Equal(t, "StrictObject<{id,name,age}>", child.TypeName())
	assert.Equal(t, "Object<{id,name}>", base.TypeName())

	got := mustMap(t, child, map[string]any{"id": "1", "full_name": "Ann", "age": 3})
	assert.Equal(t, map[string]any{"id": "1", "name": "Ann", "age": 3.0}, got)

	got = mustMap(t, base, map[string]any{"id": "1", "name": "Ann"})
	assert.Equal(t, map[string]any{"id": "1", "name": "Ann"}, got)

	_, err := sdkschema.ValidateAndMap(map[string]any{"id": "1", "name": "Ann", "age": 3}, child)
	iss := issuesOf(t, err)
	require.Len(t, iss, 2)
	assert.Equal(t, sdkschema.CodeRequired, iss[0].Code)
	assert.Equal(t, sdkschema.CodeUnknownKey, iss[1].Code)

	assert.Equal(t, "ExpandoObject<{id,name}>", g.ExtendExpandoObject(base).TypeName())
	assert.Equal(t, "Object<{id,name,x}>", g.ExtendObject(base, g.Field("x", "x", g.Unknown())).TypeName())
	assert.Equal(t, g.UnknownTyped, g.ExtendTypedExpandoObject(base, "rest", g.Number()).Policy())
	assert.Len(t, base.Fields(), 2)
}

func TestObject_LiteralFieldIsFilledIn(t *testing.T) {
	s := g.Object(
		g.Field("kind", "type", g.Literal("circle")),
		g.Field("radius", "r", g.Number()),
	)
	assert.Equal(t, map[string]any{"kind": "circle", "radius": 2.0}, mustMap(t, s, map[string]any{"r": 2}))
	assert.Equal(t, map[string]any{"type": "circle", "r": 2.0}, mustUnmap(t, s, map[string]any{"radius": 2.0}))
}
