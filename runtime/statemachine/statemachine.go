// Package statemachine evaluates status-transition graphs. The generator
// resolves and validates a graph at build time; generated code embeds the
// resolved graph as a literal and delegates every status query to it.
package statemachine

import (
	"fmt"
	"slices"

	"github.com/entforge/entforge"
	"github.com/entforge/entforge/rules"
)

// Graph is a status-transition graph. The node set is the enum's variant
// names; terminal nodes are sinks by definition. The graph need not be
// acyclic except out of terminal nodes.
type Graph struct {
	order      []string
	terminal   map[string]bool
	edges      map[string][]string
	cancelSink string
	refundSink string
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		terminal: make(map[string]bool),
		edges:    make(map[string][]string),
	}
}

// AddNode declares a variant. Declaration order is preserved and is the
// order every iteration method uses.
func (g *Graph) AddNode(name string, terminal bool) *Graph {
	if _, ok := g.terminal[name]; !ok {
		g.order = append(g.order, name)
	}
	g.terminal[name] = terminal
	return g
}

// AddEdge declares an allowed (from, to) transition. Duplicate edges and
// edges out of terminal nodes are dropped: terminal nodes are sinks by
// definition.
func (g *Graph) AddEdge(from, to string) *Graph {
	if g.terminal[from] {
		return g
	}
	if !slices.Contains(g.edges[from], to) {
		g.edges[from] = append(g.edges[from], to)
	}
	return g
}

// WithSinks designates the cancellation and refund sink variants.
func (g *Graph) WithSinks(cancel, refund string) *Graph {
	g.cancelSink = cancel
	g.refundSink = refund
	return g
}

// Sinks returns the designated cancellation and refund sink variants.
// Either may be empty when the enum declares no matching variant.
func (g *Graph) Sinks() (cancel, refund string) {
	return g.cancelSink, g.refundSink
}

// HasNode reports whether the variant is declared. Matching is
// case-sensitive.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.terminal[name]
	return ok
}

// Nodes returns the variant names in declaration order.
func (g *Graph) Nodes() []string {
	return slices.Clone(g.order)
}

// Edges returns the allowed targets of a variant in declaration order.
func (g *Graph) Edges(from string) []string {
	return slices.Clone(g.edges[from])
}

// CanTransition reports whether (from, to) is a declared edge.
func (g *Graph) CanTransition(from, to string) bool {
	return slices.Contains(g.edges[from], to)
}

// IsFinal reports whether the variant has no outgoing edges.
func (g *Graph) IsFinal(name string) bool {
	return g.HasNode(name) && len(g.edges[name]) == 0
}

// CanCancel reports whether the variant has an edge into the cancellation
// sink and is not itself terminal.
func (g *Graph) CanCancel(name string) bool {
	return g.cancelSink != "" && !g.IsFinal(name) && g.CanTransition(name, g.cancelSink)
}

// CanRefund reports whether the variant has an edge into the refund sink
// and is not itself terminal.
func (g *Graph) CanRefund(name string) bool {
	return g.refundSink != "" && !g.IsFinal(name) && g.CanTransition(name, g.refundSink)
}

// Validate checks the graph topology: every non-terminal node must have at
// least one outgoing edge, and every edge target must be a declared node.
// A node with zero edges that was not declared terminal is a specification
// error caught here, at generation time, not at call time.
func (g *Graph) Validate() error {
	for _, name := range g.order {
		for _, to := range g.edges[name] {
			if !g.HasNode(to) {
				return NewTopologyError(name, fmt.Sprintf("transition target %q is not a declared variant", to))
			}
		}
		if !g.terminal[name] && len(g.edges[name]) == 0 {
			return &AmbiguousTerminalError{State: name}
		}
	}
	return nil
}

// AmbiguousTerminalError reports a variant with zero declared edges that
// was not marked terminal.
type AmbiguousTerminalError struct {
	State string
}

// Error returns the error string.
func (e *AmbiguousTerminalError) Error() string {
	return fmt.Sprintf("statemachine: state %q has no outgoing transitions but is not declared terminal", e.State)
}

// Is reports whether the target matches the ErrAmbiguousTerminal sentinel.
func (e *AmbiguousTerminalError) Is(target error) bool {
	return target == entforge.ErrAmbiguousTerminal
}

// TopologyError reports an inconsistent transition declaration.
type TopologyError struct {
	State   string
	Message string
}

// Error returns the error string.
func (e *TopologyError) Error() string {
	return fmt.Sprintf("statemachine: state %q: %s", e.State, e.Message)
}

// Is reports whether the target matches the ErrInvalidSpec sentinel.
func (e *TopologyError) Is(target error) bool {
	return target == entforge.ErrInvalidSpec
}

// NewTopologyError creates a new TopologyError.
func NewTopologyError(state, message string) *TopologyError {
	return &TopologyError{State: state, Message: message}
}

// Variant is one declared enum variant with its category attributes.
type Variant struct {
	Name        string
	Final       bool
	Cancellable bool
	Refundable  bool
}

// Resolve builds the transition graph for a declared variant list.
//
// Resolution order: an explicit override wins; otherwise the rule-table
// default topology is filtered to the declared variants; variants the
// defaults leave without edges fall back to a linear progression through
// the declared order, with cancellation and refund edges added for flagged
// variants when the matching sink is declared. The resolved graph is
// validated before it is returned.
func Resolve(variants []Variant, override map[string][]string, defaults *rules.TransitionTable) (*Graph, error) {
	if len(variants) == 0 {
		return nil, NewTopologyError("", "enum declares no variants")
	}
	g := NewGraph()
	for _, v := range variants {
		g.AddNode(v.Name, v.Final)
	}
	cancel, refund := sinks(g, defaults)
	g.WithSinks(cancel, refund)

	switch {
	case override != nil:
		for from, targets := range override {
			if !g.HasNode(from) {
				return nil, NewTopologyError(from, "transition source is not a declared variant")
			}
			if g.terminal[from] && len(targets) > 0 {
				return nil, NewTopologyError(from, "terminal variant declares outgoing transitions")
			}
			for _, to := range targets {
				if !g.HasNode(to) {
					return nil, NewTopologyError(from, fmt.Sprintf("transition target %q is not a declared variant", to))
				}
				g.AddEdge(from, to)
			}
		}
	default:
		// Default topology, filtered to the declared variant set. Edges out
		// of variants the caller declared terminal are dropped silently:
		// terminal always wins over convention.
		for from, targets := range defaults.Edges {
			if !g.HasNode(from) {
				continue
			}
			for _, to := range targets {
				if g.HasNode(to) {
					g.AddEdge(from, to)
				}
			}
		}
		linearFallback(g, variants, cancel, refund)
		for _, v := range variants {
			if v.Final {
				continue
			}
			if v.Cancellable && cancel != "" {
				g.AddEdge(v.Name, cancel)
			}
			if v.Refundable && refund != "" {
				g.AddEdge(v.Name, refund)
			}
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// sinks returns the declared cancellation and refund sinks, matching the
// rule-table sink names against the declared variants.
func sinks(g *Graph, defaults *rules.TransitionTable) (cancel, refund string) {
	if defaults == nil {
		return "", ""
	}
	if g.HasNode(defaults.CancelSink) {
		cancel = defaults.CancelSink
	}
	if g.HasNode(defaults.RefundSink) {
		refund = defaults.RefundSink
	}
	return cancel, refund
}

// linearFallback chains variants the default topology left without edges
// through the declared order, skipping the sink variants.
func linearFallback(g *Graph, variants []Variant, cancel, refund string) {
	var chain []string
	for _, v := range variants {
		if v.Name == cancel || v.Name == refund {
			continue
		}
		chain = append(chain, v.Name)
	}
	for i, name := range chain {
		if g.terminal[name] || len(g.edges[name]) > 0 || i+1 == len(chain) {
			continue
		}
		g.AddEdge(name, chain[i+1])
	}
}
