package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/entforge/entforge/compiler/load"
	"github.com/entforge/entforge/rules"
)

// IdentifierGenerator derives structured identifier constructors for
// struct types carrying a prefix attribute. Every identifier follows the
// one shared scheme, so ParseIdentifier is the exact inverse of every
// constructor. Clock and entropy live in the per-type factory and can be
// swapped in tests.
type IdentifierGenerator struct{}

// Name implements Generator.
func (IdentifierGenerator) Name() string { return "identifier" }

// Level implements Generator.
func (IdentifierGenerator) Level() int { return 0 }

// Applies reports whether the struct declares an identifier prefix.
func (IdentifierGenerator) Applies(t *load.TypeDescriptor) bool {
	return t.Kind == load.KindStruct && t.Attributes.Has(load.AttrPrefix)
}

// Generate implements Generator.
func (g IdentifierGenerator) Generate(t *load.TypeDescriptor, _ *rules.Tables) (*Artifact, error) {
	prefix, ok := t.Attributes.String(load.AttrPrefix)
	if !ok {
		return nil, &GenerationError{Type: t.Name, Generator: g.Name(), Message: "prefix attribute must be a string"}
	}
	checksum, _ := t.Attributes.Bool(load.AttrChecksum)

	name := exportedName(t.Name)
	factoryVar := unexportedName(t.Name) + "Identifiers"

	spec := jen.Dict{
		jen.Id("Prefix"):   jen.Lit(prefix),
		jen.Id("Checksum"): jen.Lit(checksum),
	}
	if length, ok := t.Attributes.Int(load.AttrLength); ok {
		spec[jen.Id("TotalLength")] = jen.Lit(length)
	}

	code := []jen.Code{
		jen.Commentf("%s builds %s identifiers.", factoryVar, name),
		jen.Var().Id(factoryVar).Op("=").Qual(pkgIdent, "NewFactory").Call(
			jen.Qual(pkgIdent, "WithSpec").Call(jen.Qual(pkgIdent, "Spec").Values(spec)),
		),
	}
	symbols := []string{factoryVar}

	method := func(doc, methodName string, params []jen.Code, ret jen.Code, body jen.Code) {
		code = append(code,
			jen.Comment(doc),
			jen.Func().Params(jen.Id(name)).Id(methodName).Params(params...).Add(ret).Block(jen.Return(body)),
		)
		symbols = append(symbols, methodName)
	}

	method("GenerateIdentifier returns a new identifier with the type's prefix.",
		"GenerateIdentifier", nil, jen.String(),
		jen.Id(factoryVar).Dot("GenerateID").Call())
	method("GenerateOrderNumber returns a new PED-prefixed order number.",
		"GenerateOrderNumber", nil, jen.String(),
		jen.Id(factoryVar).Dot("OrderNumber").Call())
	method("GenerateInvoiceNumber returns a new NF-prefixed invoice number.",
		"GenerateInvoiceNumber", nil, jen.String(),
		jen.Id(factoryVar).Dot("InvoiceNumber").Call())
	method("GenerateTrackingCode returns a new BR-prefixed tracking code.",
		"GenerateTrackingCode", nil, jen.String(),
		jen.Id(factoryVar).Dot("TrackingCode").Call())
	method("GenerateCustomerCode returns a new CLI-prefixed customer code.",
		"GenerateCustomerCode", nil, jen.String(),
		jen.Id(factoryVar).Dot("CustomerCode").Call())
	method("GenerateTransactionID returns a new TXN-prefixed transaction id.",
		"GenerateTransactionID", nil, jen.String(),
		jen.Id(factoryVar).Dot("TransactionID").Call())
	method("GenerateShortCode returns a URL-friendly code of the requested length.",
		"GenerateShortCode", []jen.Code{jen.Id("length").Int()}, jen.String(),
		jen.Id(factoryVar).Dot("ShortCode").Call(jen.Id("length")))
	method("GenerateSKU returns a product identifier carrying the category as its prefix.",
		"GenerateSKU", []jen.Code{jen.Id("category").String()}, jen.String(),
		jen.Id(factoryVar).Dot("SKU").Call(jen.Id("category")))
	method("GenerateBarcode returns an EAN-13 compatible barcode.",
		"GenerateBarcode", []jen.Code{jen.Id("countryCode").String(), jen.Id("manufacturerCode").String()}, jen.String(),
		jen.Id(factoryVar).Dot("Barcode").Call(jen.Id("countryCode"), jen.Id("manufacturerCode")))
	method("ParseIdentifier inverts generation: it returns the identifier's components, or nil for anything malformed.",
		"ParseIdentifier", []jen.Code{jen.Id("id").String()}, jen.Op("*").Qual(pkgIdent, "Components"),
		jen.Qual(pkgIdent, "Parse").Call(jen.Id("id")))
	method("IsValidIdentifier reports whether id parses and carries the type's prefix.",
		"IsValidIdentifier", []jen.Code{jen.Id("id").String()}, jen.Bool(),
		jen.Qual(pkgIdent, "Valid").Call(jen.Id("id"), jen.Lit(prefix)))

	return &Artifact{
		Generator: g.Name(),
		Symbols:   symbols,
		Requires:  []Capability{CapClock, CapEntropy},
		Code:      code,
	}, nil
}
