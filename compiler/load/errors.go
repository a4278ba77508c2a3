package load

import (
	"errors"
	"fmt"

	"github.com/entforge/entforge"
)

// SpecError reports an invalid type description. It names the offending
// type, field, and attribute so the caller can point at the exact line of
// their spec.
type SpecError struct {
	Type    string
	Field   string
	Attr    string
	Message string
	cause   error
}

func (e *SpecError) Error() string {
	msg := "load: invalid spec"
	if e.Type != "" {
		msg += fmt.Sprintf(": type %q", e.Type)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(": field %q", e.Field)
	}
	if e.Attr != "" {
		msg += fmt.Sprintf(": attribute %q", e.Attr)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *SpecError) Unwrap() error { return e.cause }

// Is makes every SpecError match the ErrInvalidSpec sentinel.
func (e *SpecError) Is(target error) bool { return target == entforge.ErrInvalidSpec }

// IsSpecError reports whether err was caused by an invalid spec document.
func IsSpecError(err error) bool {
	return errors.Is(err, entforge.ErrInvalidSpec)
}
