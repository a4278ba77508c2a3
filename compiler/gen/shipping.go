package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/entforge/entforge/compiler/load"
	"github.com/entforge/entforge/rules"
)

// ShippingGenerator derives domestic shipping calculators for struct types
// that opt in with the shipping attribute.
type ShippingGenerator struct{}

// Name implements Generator.
func (ShippingGenerator) Name() string { return "shipping" }

// Level implements Generator.
func (ShippingGenerator) Level() int { return 0 }

// Applies reports whether the struct opted in with the shipping attribute.
func (ShippingGenerator) Applies(t *load.TypeDescriptor) bool {
	if t.Kind != load.KindStruct {
		return false
	}
	on, _ := t.Attributes.Bool(load.AttrShipping)
	return on
}

// Generate implements Generator.
func (g ShippingGenerator) Generate(t *load.TypeDescriptor, _ *rules.Tables) (*Artifact, error) {
	name := exportedName(t.Name)
	recv := receiverName(name)
	active := jen.Qual(pkgRules, "Active").Call()

	code := []jen.Code{
		jen.Comment("CalculateShippingCost returns the freight charge for the route."),
		jen.Comment("Shipments leaving the country pay the international flat rate."),
		jen.Func().Params(jen.Id(recv).Id(name)).Id("CalculateShippingCost").Params(
			jen.Id("itemsCount").Int(),
			jen.Id("weightKg").Float64(),
			jen.Id("originState").String(),
			jen.Id("destState").String(),
			jen.Id("destCountry").String(),
		).Qual(pkgDecimal, "Decimal").Block(
			jen.Return(jen.Qual(pkgShipping, "Cost").Call(
				active, jen.Id("itemsCount"), jen.Id("weightKg"),
				jen.Id("originState"), jen.Id("destState"), jen.Id("destCountry"),
			)),
		),
		jen.Comment("EstimateDeliveryDays returns the delivery estimate for the route and"),
		jen.Comment("service tier. Unknown tiers fall back to the slowest estimate."),
		jen.Func().Params(jen.Id(recv).Id(name)).Id("EstimateDeliveryDays").Params(
			jen.Id("originState").String(),
			jen.Id("destState").String(),
			jen.Id("serviceTier").String(),
		).Int().Block(
			jen.Return(jen.Qual(pkgShipping, "DeliveryDays").Call(
				active, jen.Id("originState"), jen.Id("destState"), jen.Id("serviceTier"),
			)),
		),
		jen.Comment("RecommendCarrier returns the first carrier in priority order that"),
		jen.Comment("serves the route's zone and weight."),
		jen.Func().Params(jen.Id(recv).Id(name)).Id("RecommendCarrier").Params(
			jen.Id("originState").String(),
			jen.Id("destState").String(),
			jen.Id("weightKg").Float64(),
		).String().Block(
			jen.Return(jen.Qual(pkgShipping, "Carrier").Call(
				active, jen.Id("originState"), jen.Id("destState"), jen.Id("weightKg"),
			)),
		),
	}

	return &Artifact{
		Generator: g.Name(),
		Symbols:   []string{"CalculateShippingCost", "EstimateDeliveryDays", "RecommendCarrier"},
		Requires:  []Capability{CapPure},
		Code:      code,
	}, nil
}
