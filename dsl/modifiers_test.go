package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkschema "github.com/reoring/sdkschema"
	g "github.com/reoring/sdkschema/dsl"
)

func TestModifiers_Standalone(t *testing.T) {
	assert.Nil(t, mustMap(t, g.Optional(g.String()), nil))
	assert.Nil(t, mustMap(t, g.Nullable(g.String()), nil))
	assert.Equal(t, "x", mustMap(t, g.Optional(g.String()), "x"))

	assert.Equal(t, 10.0, mustMap(t, g.Defaults(g.Number(), 10.0), nil))
	assert.Equal(t, 10.0, mustUnmap(t, g.Defaults(g.Number(), 10.0), nil))
	assert.Equal(t, 3.0, mustMap(t, g.Defaults(g.Number(), 10.0), "3"))

	_, err := sdkschema.ValidateAndMap(1, g.Optional(g.String()))
	issuesOf(t, err)
}

func presenceObject() *g.ObjectSchema {
	return g.Object(
		g.Field("name", "name", g.String()),
		g.Field("nick", "nick_name", g.Optional(g.String())),
		g.Field("note", "note", g.Nullable(g.String())),
		g.Field("tag", "tag", g.Optional(g.Nullable(g.String()))),
		g.Field("limit", "limit", g.Defaults(g.Number(), 10.0)),
	)
}

func TestObject_FieldPresence(t *testing.T) {
	s := presenceObject()

	got := mustMap(t, s, map[string]any{"name": "a", "note": nil})
	assert.Equal(t, map[string]any{"name": "a", "note": nil, "limit": 10.0}, got)

	got = mustMap(t, s, map[string]any{"name": "a", "nick_name": nil, "note": "n", "tag": nil, "limit": "2"})
	assert.Equal(t, map[string]any{"name": "a", "note": "n", "tag": nil, "limit": 2.0}, got)

	got = mustMap(t, s, map[string]any{"name": "a", "nick_name": "b", "note": nil, "tag": "t"})
	assert.Equal(t, map[string]any{"name": "a", "nick": "b", "note": nil, "tag": "t", "limit": 10.0}, got)
}

func TestObject_FieldPresence_Unmap(t *testing.T) {
	s := presenceObject()

	got := mustUnmap(t, s, map[string]any{"name": "a", "note": nil})
	assert.Equal(t, map[string]any{"name": "a", "note": nil}, got)

	got = mustUnmap(t, s, map[string]any{"name": "a", "nick": "b", "note": nil, "limit": 4.0})
	assert.Equal(t, map[string]any{"name": "a", "nick_name": "b", "note": nil, "limit": 4.0}, got)
}

func TestObject_NullableIsNotOptional(t *testing.T) {
	_, err := sdkschema.ValidateAndMap(map[string]any{"name": "a"}, presenceObject())
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, sdkschema.CodeRequired, iss[0].Code)
	assert.Contains(t, iss[0].Message, `Some properties are missing in the object: "note".`)
}

func TestObject_NullOnRequiredField(t *testing.T) {
	_, err := sdkschema.ValidateAndMap(map[string]any{"name": nil, "note": nil}, presenceObject())
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, sdkschema.CodeInvalidType, iss[0].Code)
	assert.Equal(t, []any{"name"}, iss[0].Path)
}
