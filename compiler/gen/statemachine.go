package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/entforge/entforge/compiler/load"
	"github.com/entforge/entforge/rules"
	"github.com/entforge/entforge/runtime/statemachine"
)

// StateMachineGenerator derives a status enum with transition queries from
// an enum descriptor. The transition graph is resolved and validated at
// generation time; generated methods delegate to the embedded graph and
// contain no decision logic of their own.
type StateMachineGenerator struct{}

// Name implements Generator.
func (StateMachineGenerator) Name() string { return "statemachine" }

// Level implements Generator.
func (StateMachineGenerator) Level() int { return 0 }

// Applies reports whether the descriptor is an enum.
func (StateMachineGenerator) Applies(t *load.TypeDescriptor) bool {
	return t.Kind == load.KindEnum
}

// Generate implements Generator.
func (g StateMachineGenerator) Generate(t *load.TypeDescriptor, tables *rules.Tables) (*Artifact, error) {
	override, err := t.TransitionOverride()
	if err != nil {
		return nil, err
	}
	variants := make([]statemachine.Variant, len(t.Variants))
	for i, v := range t.Variants {
		variants[i] = statemachine.Variant{
			Name:        v.Name,
			Final:       v.Final,
			Cancellable: v.Cancellable,
			Refundable:  v.Refundable,
		}
	}
	graph, err := statemachine.Resolve(variants, override, &tables.Transitions)
	if err != nil {
		return nil, err
	}

	name := exportedName(t.Name)
	graphVar := unexportedName(t.Name) + "Graph"
	recv := receiverName(name)
	parseFn := "Parse" + name

	var code []jen.Code
	code = append(code,
		jen.Commentf("%s is a generated status enum.", name),
		jen.Type().Id(name).String(),
	)

	consts := make([]jen.Code, len(t.Variants))
	symbols := []string{name}
	for i, v := range t.Variants {
		constName := name + exportedName(v.Name)
		consts[i] = jen.Id(constName).Id(name).Op("=").Lit(v.Name)
		symbols = append(symbols, constName)
	}
	code = append(code,
		jen.Commentf("Possible %s values.", name),
		jen.Const().Defs(consts...),
	)

	code = append(code,
		jen.Commentf("%s is the transition graph resolved at generation time.", graphVar),
		jen.Var().Id(graphVar).Op("=").Add(graphLiteral(graph)),
	)
	symbols = append(symbols, graphVar)

	method := func(doc, methodName string, params []jen.Code, ret jen.Code, body ...jen.Code) {
		code = append(code,
			jen.Comment(doc),
			jen.Func().Params(jen.Id(recv).Id(name)).Id(methodName).Params(params...).Add(ret).Block(body...),
		)
		symbols = append(symbols, methodName)
	}

	method("String returns the variant name.", "String", nil, jen.String(),
		jen.Return(jen.String().Call(jen.Id(recv))))
	method("IsValid reports whether the value is a declared variant.", "IsValid", nil, jen.Bool(),
		jen.Return(jen.Id(graphVar).Dot("HasNode").Call(jen.String().Call(jen.Id(recv)))))
	method("CanTransitionTo reports whether the transition to target is allowed.", "CanTransitionTo",
		[]jen.Code{jen.Id("target").Id(name)}, jen.Bool(),
		jen.Return(jen.Id(graphVar).Dot("CanTransition").Call(jen.String().Call(jen.Id(recv)), jen.String().Call(jen.Id("target")))))
	method("IsFinalStatus reports whether the status has no outgoing transitions.", "IsFinalStatus", nil, jen.Bool(),
		jen.Return(jen.Id(graphVar).Dot("IsFinal").Call(jen.String().Call(jen.Id(recv)))))
	method("CanBeCancelled reports whether the status can move to the cancellation sink.", "CanBeCancelled", nil, jen.Bool(),
		jen.Return(jen.Id(graphVar).Dot("CanCancel").Call(jen.String().Call(jen.Id(recv)))))
	method("CanBeRefunded reports whether the status can move to the refund sink.", "CanBeRefunded", nil, jen.Bool(),
		jen.Return(jen.Id(graphVar).Dot("CanRefund").Call(jen.String().Call(jen.Id(recv)))))

	code = append(code,
		jen.Commentf("%s converts a raw string into a %s. Matching is case-sensitive", parseFn, name),
		jen.Comment("and lossless: parsing a generated value returns it unchanged."),
		jen.Func().Id(parseFn).Params(jen.Id("s").String()).Params(jen.Id(name), jen.Error()).Block(
			jen.If(jen.Op("!").Id(graphVar).Dot("HasNode").Call(jen.Id("s"))).Block(
				jen.Return(jen.Lit(""), jen.Qual(pkgRoot, "NewUnknownVariantError").Call(jen.Lit(name), jen.Id("s"))),
			),
			jen.Return(jen.Id(name).Call(jen.Id("s")), jen.Nil()),
		),
	)
	symbols = append(symbols, parseFn)

	return &Artifact{
		Generator: g.Name(),
		Symbols:   symbols,
		Requires:  []Capability{CapPure},
		Code:      code,
	}, nil
}

// graphLiteral renders the resolved graph as a builder-chain expression.
// Nodes and edges are written in the graph's declaration order, which makes
// the emitted literal deterministic.
func graphLiteral(g *statemachine.Graph) *jen.Statement {
	chain := jen.Qual(pkgStateMachine, "NewGraph").Call()
	for _, n := range g.Nodes() {
		chain = chain.Op(".").Line().Id("AddNode").Call(jen.Lit(n), jen.Lit(g.IsFinal(n)))
	}
	for _, n := range g.Nodes() {
		for _, to := range g.Edges(n) {
			chain = chain.Op(".").Line().Id("AddEdge").Call(jen.Lit(n), jen.Lit(to))
		}
	}
	cancel, refund := g.Sinks()
	if cancel != "" || refund != "" {
		chain = chain.Op(".").Line().Id("WithSinks").Call(jen.Lit(cancel), jen.Lit(refund))
	}
	return chain
}
