package gen

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/entforge/entforge"
)

// ConflictError reports a symbol declared by more than one artifact of the
// same type. Generators is sorted, so the error content does not depend on
// the order the artifacts were produced in.
type ConflictError struct {
	Type       string
	Symbol     string
	Generators []string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("gen: type %s: symbol %q declared by %s", e.Type, e.Symbol, strings.Join(e.Generators, " and "))
}

// Is reports whether the target matches the ErrSymbolConflict sentinel.
func (e *ConflictError) Is(target error) bool {
	return target == entforge.ErrSymbolConflict
}

// NewConflictError creates a ConflictError with a sorted generator list.
func NewConflictError(typeName, symbol string, generators []string) *ConflictError {
	sorted := make([]string, len(generators))
	copy(sorted, generators)
	sort.Strings(sorted)
	return &ConflictError{Type: typeName, Symbol: symbol, Generators: sorted}
}

// LayeringError reports an artifact requiring a capability above its
// generator's declared level.
type LayeringError struct {
	Type       string
	Generator  string
	Level      int
	Capability Capability
}

// Error implements the error interface.
func (e *LayeringError) Error() string {
	return fmt.Sprintf("gen: type %s: generator %s (level %d) requires %s (level %d)",
		e.Type, e.Generator, e.Level, e.Capability, e.Capability.CapLevel())
}

// Is reports whether the target matches the ErrLayeringViolation sentinel.
func (e *LayeringError) Is(target error) bool {
	return target == entforge.ErrLayeringViolation
}

// GenerationError reports a pattern generator failure on one type.
type GenerationError struct {
	Type      string
	Generator string
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("gen: generation error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Generator != "" {
		b.WriteString(" in ")
		b.WriteString(e.Generator)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error { return e.Cause }

// Is reports whether the target matches the ErrGenerationFailed sentinel.
func (e *GenerationError) Is(target error) bool {
	return target == entforge.ErrGenerationFailed
}

// ConfigError reports an invalid engine option.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("gen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("gen: config error for %q: %s", e.Option, e.Message)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: message}
}

// IsConflictError reports whether the error is a symbol conflict.
func IsConflictError(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsLayeringError reports whether the error is a layering violation.
func IsLayeringError(err error) bool {
	var le *LayeringError
	return errors.As(err, &le)
}

// IsGenerationError reports whether the error is a generation failure.
func IsGenerationError(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
