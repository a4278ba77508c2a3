package entforge

import (
	"errors"
	"fmt"
)

// Standard sentinel errors shared by the engine and by generated code.
var (
	// ErrInvalidSpec is returned when a type description is malformed or
	// ambiguous. It is surfaced before any pattern generator runs.
	ErrInvalidSpec = errors.New("entforge: invalid spec")

	// ErrInvalidRules is returned when a rule-table document fails to load
	// or fails consistency validation.
	ErrInvalidRules = errors.New("entforge: invalid rule tables")

	// ErrAmbiguousTerminal is returned when a status variant has no outgoing
	// transitions but is not declared terminal.
	ErrAmbiguousTerminal = errors.New("entforge: ambiguous terminal state")

	// ErrSymbolConflict is returned when two pattern generators declare the
	// same symbol for one type.
	ErrSymbolConflict = errors.New("entforge: generated symbol conflict")

	// ErrLayeringViolation is returned when a generator's artifact requires
	// a capability reserved for a higher architectural level.
	ErrLayeringViolation = errors.New("entforge: architectural layering violation")

	// ErrUnknownVariant is returned by generated status parsers for input
	// that names no declared variant. It is a value-level condition of
	// generated code and never aborts a generation run.
	ErrUnknownVariant = errors.New("entforge: unknown variant")

	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("entforge: code generation failed")
)

// UnknownVariantError is returned by generated Parse functions when the
// input does not name a declared enum variant.
type UnknownVariantError struct {
	Type  string
	Value string
}

// Error returns the error string.
func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("entforge: unknown %s variant %q", e.Type, e.Value)
}

// Is reports whether the target matches the ErrUnknownVariant sentinel.
func (e *UnknownVariantError) Is(target error) bool {
	return target == ErrUnknownVariant
}

// NewUnknownVariantError returns a new UnknownVariantError for the given
// enum type and rejected input.
func NewUnknownVariantError(typeName, value string) *UnknownVariantError {
	return &UnknownVariantError{Type: typeName, Value: value}
}

// IsUnknownVariant reports whether the error is an UnknownVariantError.
func IsUnknownVariant(err error) bool {
	var uv *UnknownVariantError
	return errors.As(err, &uv)
}
