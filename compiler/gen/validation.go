package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/entforge/entforge/compiler/load"
	"github.com/entforge/entforge/rules"
	"github.com/entforge/entforge/runtime/validate"
)

// ValidationGenerator derives field validation for every struct type.
// Rules are resolved at generation time with a fixed priority: an explicit
// validate attribute wins over a field-name pattern from the rule tables;
// a field that resolves to no rule is simply left out. Generated Validate
// accumulates every failure instead of stopping at the first.
type ValidationGenerator struct{}

// Name implements Generator.
func (ValidationGenerator) Name() string { return "validation" }

// Level implements Generator.
func (ValidationGenerator) Level() int { return 0 }

// Applies reports whether the descriptor is a struct.
func (ValidationGenerator) Applies(t *load.TypeDescriptor) bool {
	return t.Kind == load.KindStruct
}

// fieldRule is one resolved (field, rule) binding.
type fieldRule struct {
	field *load.FieldDescriptor
	kind  validate.Kind
}

// kindIdents maps rule kinds to their identifiers in the validate package.
var kindIdents = map[validate.Kind]string{
	validate.Required:      "Required",
	validate.Email:         "Email",
	validate.Phone:         "Phone",
	validate.NationalTaxID: "NationalTaxID",
	validate.PostalCode:    "PostalCode",
	validate.RegionCode:    "RegionCode",
}

// Generate implements Generator.
func (g ValidationGenerator) Generate(t *load.TypeDescriptor, tables *rules.Tables) (*Artifact, error) {
	name := exportedName(t.Name)
	recv := receiverName(name)
	bound := resolveRules(t, tables)

	chain := func() *jen.Statement {
		c := jen.Qual(pkgValidate, "New").Call()
		for _, b := range bound {
			c = c.Op(".").Line().Id("Field").Call(
				jen.Lit(b.field.Name),
				jen.Id(recv).Dot(exportedName(b.field.Name)),
				jen.Qual(pkgValidate, kindIdents[b.kind]),
			)
		}
		return c
	}

	var cases []jen.Code
	for _, b := range bound {
		cases = append(cases, jen.Case(jen.Lit(b.field.Name)).Block(
			jen.Return(jen.Qual(pkgValidate, "Check").Call(
				jen.Id(recv).Dot(exportedName(b.field.Name)),
				jen.Qual(pkgValidate, kindIdents[b.kind]),
			)),
		))
	}
	cases = append(cases, jen.Default().Block(jen.Return(jen.Nil())))

	code := []jen.Code{
		jen.Comment("Validate evaluates every field rule and reports all failures at"),
		jen.Comment("once. A nil error means every populated field passed."),
		jen.Func().Params(jen.Id(recv).Id(name)).Id("Validate").Params().Error().Block(
			jen.Return(chain().Op(".").Line().Id("Err").Call()),
		),
		jen.Comment("ValidateField evaluates the rule bound to one field. Fields without"),
		jen.Comment("a resolvable rule validate successfully."),
		jen.Func().Params(jen.Id(recv).Id(name)).Id("ValidateField").Params(jen.Id("name").String()).Error().Block(
			jen.Switch(jen.Id("name")).Block(cases...),
		),
		jen.Comment("ValidationContext returns the per-field evaluation outcome, passing"),
		jen.Comment("fields included."),
		jen.Func().Params(jen.Id(recv).Id(name)).Id("ValidationContext").Params().Map(jen.String()).Qual(pkgValidate, "FieldResult").Block(
			jen.Return(chain().Op(".").Line().Id("Context").Call()),
		),
	}

	return &Artifact{
		Generator: g.Name(),
		Symbols:   []string{"Validate", "ValidateField", "ValidationContext"},
		Requires:  []Capability{CapPure},
		Code:      code,
	}, nil
}

// resolveRules binds each string field to a validation rule, in field
// declaration order. Priority: explicit attribute > name pattern > none.
func resolveRules(t *load.TypeDescriptor, tables *rules.Tables) []fieldRule {
	var bound []fieldRule
	for _, f := range t.Fields {
		if f.Type != "string" {
			continue
		}
		var kind validate.Kind
		if ruleName, ok := f.Attributes.String(load.AttrValidate); ok {
			if ruleName == "none" {
				continue
			}
			kind = validate.KindOf(ruleName)
		} else {
			kind = validate.KindOf(tables.Validation.RuleFor(f.Name))
		}
		if kind == validate.None {
			continue
		}
		bound = append(bound, fieldRule{field: f, kind: kind})
	}
	return bound
}
