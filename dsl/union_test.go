package dsl_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkschema "github.com/reoring/sdkschema"
	g "github.com/reoring/sdkschema/dsl"
)

const testCardNumber = "4111111111111111"

func TestOneOf_Exclusive(t *testing.T) {
	u := g.OneOf([]sdkschema.Schema{g.String(), g.Number()})

	assert.Equal(t, "5", mustMap(t, u, "5"))
	assert.Equal(t, 5.0, mustMap(t, u, 5))
	assert.Equal(t, 5.0, mustMap(t, u, json.Number("5")))
	assert.Equal(t, "5", mustUnmap(t, u, "5"))

	_, err := sdkschema.ValidateAndMap(true, u)
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, sdkschema.CodeUnionNoMatch, iss[0].Code)
	assert.Contains(t, iss[0].Message, "Expected value of 'OneOf<string | number>' but it did not match any schema.")
}

func TestOneOf_Ambiguous(t *testing.T) {
	u := g.OneOf([]sdkschema.Schema{g.String(), g.Unknown()})

	_, err := sdkschema.ValidateAndMap("anything", u)
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, sdkschema.CodeUnionAmbiguous, iss[0].Code)
	assert.Contains(t, iss[0].Message, "matched more than one type: string, unknown.")

	assert.Equal(t, 1.0, mustMap(t, g.OneOf([]sdkschema.Schema{g.String(), g.Number()}), 1.0))
}

func TestOneOf_LenientFallback(t *testing.T) {
	u := g.OneOf([]sdkschema.Schema{g.Number(), g.Boolean()})

	assert.Equal(t, true, mustMap(t, u, "true"))
	assert.Equal(t, 12.0, mustMap(t, u, "12"))

	_, err := sdkschema.ValidateAndMap("true", u, strict)
	iss := issuesOf(t, err)
	assert.Equal(t, sdkschema.CodeUnionNoMatch, iss[0].Code)
}

func TestAnyOf_Inclusive(t *testing.T) {
	u := g.AnyOf([]sdkschema.Schema{g.String(), g.Number()})

	assert.Equal(t, 5.0, mustMap(t, u, 5))
	assert.Equal(t, "x", mustMap(t, g.AnyOf([]sdkschema.Schema{g.String(), g.Unknown()}), "x"))

	_, err := sdkschema.ValidateAndMap(map[string]any{"a": 1}, u)
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, sdkschema.CodeUnionNoMatch, iss[0].Code)
	assert.Contains(t, iss[0].Message, "'AnyOf<string | number>'")
}

func paymentVariants() (card, bank *g.ObjectSchema) {
	card = g.StrictObject(
		g.Field("type", "type", g.Literal("card")),
		g.Field("number", "card_number", g.String()),
	)
	bank = g.StrictObject(
		g.Field("type", "type", g.Literal("bank")),
		g.Field("iban", "iban", g.String()),
	)
	return card, bank
}

func TestUnion_Discriminator(t *testing.T) {
	card, bank := paymentVariants()
	u := g.OneOf([]sdkschema.Schema{card, bank},
		g.WithDiscriminator("type", g.Variant("card", card), g.Variant("bank", bank)))

	got := mustMap(t, u, map[string]any{"type": "card", "card_number": testCardNumber})
	assert.Equal(t, map[string]any{"type": "card", "number": testCardNumber}, got)

	got = mustMap(t, u, map[string]any{"type": "bank", "iban": "DE89"})
	assert.Equal(t, map[string]any{"type": "bank", "iban": "DE89"}, got)

	back := mustUnmap(t, u, map[string]any{"type": "card", "number": testCardNumber})
	assert.Equal(t, map[string]any{"type": "card", "card_number": testCardNumber}, back)

	// A known tag goes straight to its variant, so its issues surface as is.
	_, err := sdkschema.ValidateAndMap(map[string]any{"type": "bank", "card_number": testCardNumber}, u)
	iss := issuesOf(t, err)
	require.Len(t, iss, 2)
	assert.Equal(t, sdkschema.CodeRequired, iss[0].Code)
	assert.Equal(t, sdkschema.CodeUnknownKey, iss[1].Code)
	assert.Equal(t, "StrictObject<{type,number}>", card.TypeName())
	assert.Equal(t, bank.TypeName(), iss[0].Type)
}

func TestUnion_DiscriminatorFallsBackToTrials(t *testing.T) {
	card, bank := paymentVariants()
	u := g.OneOf([]sdkschema.Schema{card, bank},
		g.WithDiscriminator("type", g.Variant("card", card), g.Variant("bank", bank)))

	got := mustMap(t, u, map[string]any{"type": "wire", "card_number": testCardNumber})
	assert.Equal(t, map[string]any{"type": "card", "number": testCardNumber}, got)

	got = mustMap(t, u, map[string]any{"iban": "DE89"})
	assert.Equal(t, map[string]any{"type": "bank", "iban": "DE89"}, got)
}

func TestUnion_DiscriminatorAvoidsAmbiguity(t *testing.T) {
	a := g.Object(g.Field("type", "type", g.String()), g.Field("v", "v", g.Unknown()))
	b := g.Object(g.Field("type", "type", g.String()))
	in := map[string]any{"type": "b", "v": 1}

	_, err := sdkschema.ValidateAndMap(in, g.OneOf([]sdkschema.Schema{a, b}))
	iss := issuesOf(t, err)
	assert.Equal(t, sdkschema.CodeUnionAmbiguous, iss[0].Code)

	u := g.OneOf([]sdkschema.Schema{a, b}, g.WithDiscriminator("type", g.Variant("a", a), g.Variant("b", b)))
	assert.Equal(t, map[string]any{"type": "b"}, mustMap(t, u, in))

	incl := g.AnyOf([]sdkschema.Schema{a, b}, g.WithDiscriminator("type", g.Variant("a", a), g.Variant("b", b)))
	assert.Equal(t, map[string]any{"type": "b"}, mustMap(t, incl, in))
	assert.Equal(t, map[string]any{"type": "c", "v": 1}, mustMap(t, incl, map[string]any{"type": "c", "v": 1}))

	t.Run("xml attribute tag", func(t *testing.T) {
		a := g.Object(g.Field("type", "type", g.String(), g.XMLAttr()), g.Field("v", "v", g.Unknown()))
		b := g.Object(g.Field("type", "type", g.String(), g.XMLAttr()))
		in := map[string]any{"$": map[string]any{"type": "b"}, "v": "1"}

		_, err := sdkschema.ValidateAndMapXML(in, g.OneOf([]sdkschema.Schema{a, b}))
		iss := issuesOf(t, err)
		assert.Equal(t, sdkschema.CodeUnionAmbiguous, iss[0].Code)

		u := g.OneOf([]sdkschema.Schema{a, b}, g.WithDiscriminator("type", g.Variant("a", a), g.Variant("b", b)))
		got, err := sdkschema.ValidateAndMapXML(in, u)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"type": "b"}, got)
	})
}

func TestUnion_NestedPath(t *testing.T) {
	s := g.Object(g.Field("value", "value", g.OneOf([]sdkschema.Schema{g.String(), g.Number()})))
	_, err := sdkschema.ValidateAndMap(map[string]any{"value": false}, s)
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, "/value", iss[0].Pointer())
	assert.Equal(t, "OneOf<string | number>", iss[0].Type)
}
