package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/entforge/entforge/compiler/load"
	"github.com/entforge/entforge/rules"
)

// TaxGenerator derives Brazilian levy calculators for struct types that
// opt in with the tax attribute. All money math delegates to the runtime
// package; the generated methods carry no rates of their own, so a rule
// table swap changes their results without regeneration.
type TaxGenerator struct{}

// Name implements Generator.
func (TaxGenerator) Name() string { return "tax" }

// Level implements Generator.
func (TaxGenerator) Level() int { return 0 }

// Applies reports whether the struct opted in with the tax attribute.
func (TaxGenerator) Applies(t *load.TypeDescriptor) bool {
	if t.Kind != load.KindStruct {
		return false
	}
	on, _ := t.Attributes.Bool(load.AttrTax)
	return on
}

// Generate implements Generator.
func (g TaxGenerator) Generate(t *load.TypeDescriptor, _ *rules.Tables) (*Artifact, error) {
	name := exportedName(t.Name)
	recv := receiverName(name)
	identity := identityField(t)
	if identity == nil {
		return nil, &GenerationError{Type: t.Name, Generator: g.Name(), Message: "no string field available as the fiscal identity"}
	}

	active := jen.Qual(pkgRules, "Active").Call()
	subtotal := jen.Id("subtotal").Qual(pkgDecimal, "Decimal")
	retDec := jen.Qual(pkgDecimal, "Decimal")

	code := []jen.Code{
		jen.Comment("CalculateICMS returns the state goods levy on the subtotal."),
		jen.Func().Params(jen.Id(recv).Id(name)).Id("CalculateICMS").Params(subtotal, jen.Id("state").String()).Add(retDec).Block(
			jen.Return(jen.Qual(pkgTax, "ICMS").Call(active, jen.Id("subtotal"), jen.Id("state"))),
		),
		jen.Comment("CalculatePIS returns the federal PIS levy on the subtotal."),
		jen.Func().Params(jen.Id(recv).Id(name)).Id("CalculatePIS").Params(subtotal).Add(retDec).Block(
			jen.Return(jen.Qual(pkgTax, "PIS").Call(active, jen.Id("subtotal"))),
		),
		jen.Comment("CalculateCOFINS returns the federal COFINS levy on the subtotal."),
		jen.Func().Params(jen.Id(recv).Id(name)).Id("CalculateCOFINS").Params(subtotal).Add(retDec).Block(
			jen.Return(jen.Qual(pkgTax, "COFINS").Call(active, jen.Id("subtotal"))),
		),
		jen.Comment("CalculateISS returns the municipal service levy on the subtotal."),
		jen.Func().Params(jen.Id(recv).Id(name)).Id("CalculateISS").Params(subtotal, jen.Id("city").String()).Add(retDec).Block(
			jen.Return(jen.Qual(pkgTax, "ISS").Call(active, jen.Id("subtotal"), jen.Id("city"))),
		),
		jen.Comment("CalculateTotalTax sums the applicable levies: ISS replaces ICMS for"),
		jen.Comment("services. The total is rounded to the minor unit once, at the end."),
		jen.Func().Params(jen.Id(recv).Id(name)).Id("CalculateTotalTax").Params(
			subtotal, jen.Id("state").String(), jen.Id("city").String(), jen.Id("isService").Bool(),
		).Add(retDec).Block(
			jen.Return(jen.Qual(pkgTax, "Total").Call(active, jen.Id("subtotal"), jen.Id("state"), jen.Id("city"), jen.Id("isService"))),
		),
		jen.Comment("GenerateNFEKey derives the fiscal document key from the entity"),
		jen.Comment("identity and the issue time."),
		jen.Func().Params(jen.Id(recv).Id(name)).Id("GenerateNFEKey").Params(jen.Id("issuedAt").Qual("time", "Time")).String().Block(
			jen.Return(jen.Qual(pkgTax, "NFEKey").Call(jen.Id(recv).Dot(exportedName(identity.Name)), jen.Id("issuedAt"))),
		),
	}

	return &Artifact{
		Generator: g.Name(),
		Symbols:   []string{"CalculateICMS", "CalculatePIS", "CalculateCOFINS", "CalculateISS", "CalculateTotalTax", "GenerateNFEKey"},
		Requires:  []Capability{CapPure},
		Code:      code,
	}, nil
}

// identityField returns the field flagged with the identity attribute, or
// the first string field when none is flagged.
func identityField(t *load.TypeDescriptor) *load.FieldDescriptor {
	for _, f := range t.Fields {
		if on, _ := f.Attributes.Bool(load.AttrIdentity); on && f.Type == "string" {
			return f
		}
	}
	for _, f := range t.Fields {
		if f.Type == "string" {
			return f
		}
	}
	return nil
}
