// Package dsl provides the schema constructors used by generated SDK models.
//
// Overview
//   - Primitives: String(), Number(), BigInt(), Boolean(), Literal(v), Unknown(),
//     NumberEnum(values), StringEnum(values...). Number/BigInt/Boolean accept
//     numeric and boolean strings unless the caller validates strictly or the
//     schema is built with Strict().
//   - Modifiers: Optional(s) treats nil/absent as absent, Nullable(s) lets nil
//     round-trip, Defaults(s, v) substitutes v for nil/absent.
//   - Containers: Array(elem), Dict(elem).
//   - Objects: Object, StrictObject, ExpandoObject, TypedExpandoObject and their
//     Extend* variants. Field(domain, wire, s) declares the key rename; XMLAttr()
//     and XMLName(name) control the XML projection.
//   - Unions: OneOf(schemas) requires exactly one match, AnyOf(schemas) takes the
//     first. WithDiscriminator(field, Variant(tag, s)...) routes by tag before
//     falling back to trial validation.
//   - DiscriminatedObject(wireField, domainField, defaultKey, variants...)
//     selects an object by tag with a default fallback.
//   - Lazy(factory) defers construction for recursive models.
//
// Every schema implements sdkschema.Schema in four directions (Map, Unmap,
// MapXML, UnmapXML) and jsonschema export through ToJSONSchema.
//
// File layout (roles)
//   - direction.go: direction-generic validate/convert helpers shared by containers.
//   - primitives.go / enum.go: leaf schemas.
//   - modifiers.go: Optional/Nullable/Defaults and field presence decisions.
//   - object_builder.go / object_core.go: object constructors and the keyed walk.
//   - array.go / map_core.go: Array and Dict.
//   - union.go / discriminated.go: OneOf/AnyOf and DiscriminatedObject.
//   - lazy.go: recursion support.
package dsl
