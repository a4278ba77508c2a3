package gen

import "github.com/dave/jennifer/jen"

// Artifact is one generated-code unit produced by a single generator for a
// single type. Artifacts are transient: the emitter consumes them
// immediately after composition validation.
type Artifact struct {
	// Generator is the producing generator's name.
	Generator string
	// Symbols are the method, constant, and declaration names the artifact
	// introduces, in declaration order. Symbols must be pairwise disjoint
	// across the artifacts of one type.
	Symbols []string
	// Requires lists the capabilities the generated code depends on. The
	// composition validator checks it against the generator's level; the
	// generated text is never inspected.
	Requires []Capability
	// Code is the artifact body, merged into the type's output file.
	Code []jen.Code
}
