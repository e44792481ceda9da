// Package catalog holds the sample SDK models exposed by the CLI.
package catalog

import (
	"slices"
	"sync"

	sdkschema "github.com/reoring/sdkschema"
	g "github.com/reoring/sdkschema/dsl"
)

// Entry is a named model.
type Entry struct {
	Name string
	// Root is the XML root element name.
	Root   string
	Schema sdkschema.Schema
}

var (
	once    sync.Once
	entries map[string]Entry
)

func build() {
	entries = map[string]Entry{}
	add := func(name, root string, s sdkschema.Schema) {
		entries[name] = Entry{Name: name, Root: root, Schema: s}
	}
	add("user", "user", User())
	add("pet", "pet", Pet())
	add("order", "order", Order())
	add("shape", "shape", Shape())
	add("tree", "node", Tree())
	add("payment", "payment", Payment())
	add("book", "book", Book())
}

// Names returns the model names in sorted order.
func Names() []string {
	once.Do(build)
	names := make([]string, 0, len(entries))
	for n := range entries {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the model registered as name.
func Lookup(name string) (Entry, bool) {
	once.Do(build)
	e, ok := entries[name]
	return e, ok
}

// User is the wire/domain rename example.
func User() *g.ObjectSchema {
	return g.Object(
		g.Field("id", "user_id", g.String()),
		g.Field("age", "user_age", g.Number()),
		g.Field("email", "email", g.Optional(g.String())),
	)
}

type PetStatus string

const (
	PetAvailable PetStatus = "available"
	PetPending   PetStatus = "pending"
	PetSold      PetStatus = "sold"
)

func category() *g.ObjectSchema {
	return g.Object(
		g.Field("id", "id", g.BigInt()),
		g.Field("name", "name", g.String()),
	)
}

// Pet carries an enum, a nested object and typed extra labels.
func Pet() *g.ObjectSchema {
	return g.TypedExpandoObject("labels", g.String(),
		g.Field("id", "id", g.BigInt()),
		g.Field("name", "name", g.String()),
		g.Field("category", "category", g.Optional(category())),
		g.Field("photoUrls", "photo_urls", g.Defaults(g.Array(g.String()), []any{})),
		g.Field("status", "status", g.Optional(g.StringEnum(PetAvailable, PetPending, PetSold))),
	)
}

// Order extends a strict base with nullable and defaulted fields.
func Order() *g.ObjectSchema {
	base := g.StrictObject(
		g.Field("id", "id", g.String()),
		g.Field("createdAt", "created_at", g.String()),
	)
	item := g.StrictObject(
		g.Field("sku", "sku", g.String()),
		g.Field("quantity", "qty", g.NumberEnum([]int{1, 2, 3, 4, 5})),
		g.Field("unitPrice", "unit_price", g.Number()),
	)
	return g.ExtendStrictObject(base,
		g.Field("items", "line_items", g.Array(item)),
		g.Field("note", "note", g.Nullable(g.String())),
		g.Field("complete", "complete", g.Defaults(g.Boolean(), false)),
		g.Field("metadata", "metadata", g.Optional(g.Dict(g.Unknown()))),
	)
}

// Shape is a discriminated object keyed by "type" on the wire and "kind" in
// the domain, defaulting to a circle.
func Shape() sdkschema.Schema {
	circle := g.Object(
		g.Field("kind", "type", g.Literal("circle")),
		g.Field("radius", "r", g.Number()),
	)
	square := g.Object(
		g.Field("kind", "type", g.Literal("square")),
		g.Field("side", "side", g.Number()),
	)
	return g.DiscriminatedObject("type", "kind", "circle",
		g.Variant("circle", circle),
		g.Variant("square", square),
	)
}

// Tree is a recursive node.
func Tree() sdkschema.Schema {
	var node sdkschema.Schema
	node = g.Object(
		g.Field("value", "value", g.Number()),
		g.Field("children", "children", g.Optional(g.Array(g.Lazy(func() sdkschema.Schema { return node })))),
	)
	return node
}

// Payment is a oneOf with a discriminator.
func Payment() sdkschema.Schema {
	card := g.StrictObject(
		g.Field("type", "type", g.Literal("card")),
		g.Field("cardNumber", "card_number", g.String()),
		g.Field("expiry", "expiry", g.Optional(g.String())),
	)
	bank := g.StrictObject(
		g.Field("type", "type", g.Literal("bank")),
		g.Field("iban", "iban", g.String()),
	)
	return g.OneOf([]sdkschema.Schema{card, bank},
		g.WithDiscriminator("type", g.Variant("card", card), g.Variant("bank", bank)))
}

// Book is shaped for XML: an id attribute and repeated tag elements.
func Book() *g.ObjectSchema {
	return g.Object(
		g.Field("id", "id", g.String(), g.XMLAttr()),
		g.Field("title", "title", g.String()),
		g.Field("price", "price", g.Number()),
		g.Field("tags", "tag", g.Optional(g.Array(g.String()))),
		g.Field("inStock", "in_stock", g.Boolean(), g.XMLName("available")),
	)
}
