package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/entforge/entforge/compiler/load"
	"github.com/entforge/entforge/rules"
)

// DomainModelGenerator derives the storage-facing surface of a struct
// type: its persistence table name, cache key and lifetime, and audit
// records. It is the one built-in generator above layer zero, which is why
// it may require the cache and persistence capabilities the others cannot.
type DomainModelGenerator struct{}

// Name implements Generator.
func (DomainModelGenerator) Name() string { return "domainmodel" }

// Level implements Generator.
func (DomainModelGenerator) Level() int { return 1 }

// Applies reports whether the struct declares a table or cache attribute.
func (DomainModelGenerator) Applies(t *load.TypeDescriptor) bool {
	return t.Kind == load.KindStruct &&
		(t.Attributes.Has(load.AttrTable) || t.Attributes.Has(load.AttrCacheTTL))
}

// Generate implements Generator.
func (g DomainModelGenerator) Generate(t *load.TypeDescriptor, _ *rules.Tables) (*Artifact, error) {
	name := exportedName(t.Name)
	recv := receiverName(name)
	tableConst := name + "Table"

	table, ok := t.Attributes.String(load.AttrTable)
	if !ok {
		table = tableName(t.Name)
	}
	ttl, _ := t.Attributes.Int(load.AttrCacheTTL)
	identity := identityField(t)
	if identity == nil {
		return nil, &GenerationError{Type: t.Name, Generator: g.Name(), Message: "no string field available as the entity identity"}
	}

	code := []jen.Code{
		jen.Commentf("%s is the persistence table %s rows live in.", tableConst, name),
		jen.Const().Id(tableConst).Op("=").Lit(table),
		jen.Comment("TableName returns the persistence table name."),
		jen.Func().Params(jen.Id(name)).Id("TableName").Params().String().Block(
			jen.Return(jen.Id(tableConst)),
		),
		jen.Comment("CacheKey returns the entity's cache key, scoped by type name so"),
		jen.Comment("distinct types never collide in a shared cache."),
		jen.Func().Params(jen.Id(recv).Id(name)).Id("CacheKey").Params().String().Block(
			jen.Return(jen.Lit(unexportedName(t.Name)+":").Op("+").Id(recv).Dot(exportedName(identity.Name))),
		),
		jen.Comment("CacheTTL returns the cached entity lifetime. Zero means the entry"),
		jen.Comment("never expires on its own."),
		jen.Func().Params(jen.Id(name)).Id("CacheTTL").Params().Qual("time", "Duration").Block(
			jen.Return(jen.Lit(ttl).Op("*").Qual("time", "Second")),
		),
		jen.Comment("AuditRecord describes an action on the entity for the audit trail."),
		jen.Func().Params(jen.Id(recv).Id(name)).Id("AuditRecord").Params(
			jen.Id("action").String(), jen.Id("userID").String(),
		).Map(jen.String()).String().Block(
			jen.Return(jen.Map(jen.String()).String().Values(jen.Dict{
				jen.Lit("entity"):    jen.Lit(name),
				jen.Lit("entity_id"): jen.Id(recv).Dot(exportedName(identity.Name)),
				jen.Lit("table"):     jen.Id(tableConst),
				jen.Lit("action"):    jen.Id("action"),
				jen.Lit("user_id"):   jen.Id("userID"),
				jen.Lit("at"):        jen.Qual("time", "Now").Call().Dot("UTC").Call().Dot("Format").Call(jen.Qual("time", "RFC3339")),
			})),
		),
	}

	return &Artifact{
		Generator: g.Name(),
		Symbols:   []string{tableConst, "TableName", "CacheKey", "CacheTTL", "AuditRecord"},
		Requires:  []Capability{CapClock, CapCache, CapPersistence},
		Code:      code,
	}, nil
}
