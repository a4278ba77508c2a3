// Package gen turns validated type descriptors into generated Go source.
// Each pattern generator produces one artifact per matching descriptor; the
// composition validator checks the artifacts against each other, and the
// emitter merges them into one file per type. Generation is deterministic:
// identical descriptors and rule tables yield byte-identical output.
package gen

import (
	"github.com/entforge/entforge/compiler/load"
	"github.com/entforge/entforge/rules"
)

// Capability names an effect a generated artifact depends on.
type Capability uint8

const (
	// CapPure is plain computation with no outside effects.
	CapPure Capability = iota
	// CapClock reads the current time.
	CapClock
	// CapEntropy draws random values.
	CapEntropy
	// CapCache keys into a cache layer.
	CapCache
	// CapPersistence names storage tables.
	CapPersistence
	// CapAsync schedules background work.
	CapAsync
)

var capabilityNames = [...]string{
	CapPure:        "pure",
	CapClock:       "clock",
	CapEntropy:     "entropy",
	CapCache:       "cache",
	CapPersistence: "persistence",
	CapAsync:       "async",
}

func (c Capability) String() string {
	if int(c) < len(capabilityNames) {
		return capabilityNames[c]
	}
	return "unknown"
}

// CapLevel returns the layer a capability lives in. Pure computation, clock
// reads, and entropy draws are layer zero; cache, persistence, and async
// effects sit above it and are off limits to layer-zero generators.
func (c Capability) CapLevel() int {
	switch c {
	case CapPure, CapClock, CapEntropy:
		return 0
	default:
		return 1
	}
}

// Generator produces one artifact per matching type descriptor.
//
// Generate must be a pure function of the descriptor and the rule tables:
// no I/O, no shared mutable state. Level declares the highest capability
// layer the generator's artifacts may require.
type Generator interface {
	Name() string
	Level() int
	Applies(*load.TypeDescriptor) bool
	Generate(*load.TypeDescriptor, *rules.Tables) (*Artifact, error)
}

// Registry holds generators in a fixed registration order. The order is
// the emission order, independent of how a caller assembled the request.
type Registry struct {
	generators []Generator
	index      map[string]int
}

// NewRegistry creates a registry with the given generators, in order.
func NewRegistry(gens ...Generator) *Registry {
	r := &Registry{index: make(map[string]int, len(gens))}
	for _, g := range gens {
		r.Register(g)
	}
	return r
}

// Register appends a generator. Re-registering a name is a no-op; the
// first registration keeps its position.
func (r *Registry) Register(g Generator) *Registry {
	if _, ok := r.index[g.Name()]; ok {
		return r
	}
	r.index[g.Name()] = len(r.generators)
	r.generators = append(r.generators, g)
	return r
}

// Generators returns the registered generators in registration order.
func (r *Registry) Generators() []Generator {
	return r.generators
}

// Lookup returns the registered generator with the given name, or nil.
func (r *Registry) Lookup(name string) Generator {
	if i, ok := r.index[name]; ok {
		return r.generators[i]
	}
	return nil
}

// position returns the registration position of a generator name. Unknown
// names sort last.
func (r *Registry) position(name string) int {
	if i, ok := r.index[name]; ok {
		return i
	}
	return len(r.generators)
}

// DefaultRegistry returns the built-in pattern generators in their
// canonical emission order.
func DefaultRegistry() *Registry {
	return NewRegistry(
		StateMachineGenerator{},
		TaxGenerator{},
		ShippingGenerator{},
		ValidationGenerator{},
		IdentifierGenerator{},
		DomainModelGenerator{},
	)
}
