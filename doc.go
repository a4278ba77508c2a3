// Package entforge is a build-time generator that turns declarative
// descriptions of commerce domain types into derived Go implementation code
// for recurring patterns: status state machines, Brazilian tax computation,
// shipping computation, field validation chains, identifier generation and
// parsing, and domain-model plumbing.
//
// The pipeline is a small compiler: compiler/load parses a raw type
// description into a validated descriptor, compiler/gen fans it out to
// independent pattern generators, checks the resulting artifacts for symbol
// conflicts and layering violations, and emits one deterministic file per
// type. Generated code delegates its behavior to the runtime packages, which
// read the process-wide rule tables in the rules package.
//
// Identical descriptors always produce byte-identical output; generation for
// one type is synchronous and side-effect free, and independent types may be
// generated in parallel.
package entforge
