package gen

import "sort"

// Compose validates the artifacts produced for one type before emission.
//
// Two properties are checked. Symbol disjointness: no symbol may be
// declared by more than one artifact; the first conflict in symbol sort
// order is reported, so the outcome does not depend on artifact order.
// Layering: an artifact may only require capabilities at or below its
// generator's level, checked structurally against Requires.
func Compose(typeName string, artifacts []*Artifact, levels map[string]int) error {
	owners := make(map[string][]string)
	for _, a := range artifacts {
		for _, s := range a.Symbols {
			owners[s] = append(owners[s], a.Generator)
		}
	}
	symbols := make([]string, 0, len(owners))
	for s := range owners {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	for _, s := range symbols {
		if gens := owners[s]; len(gens) > 1 {
			return NewConflictError(typeName, s, gens)
		}
	}

	for _, a := range artifacts {
		level := levels[a.Generator]
		for _, c := range a.Requires {
			if c.CapLevel() > level {
				return &LayeringError{Type: typeName, Generator: a.Generator, Level: level, Capability: c}
			}
		}
	}
	return nil
}
