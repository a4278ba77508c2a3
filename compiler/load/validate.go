package load

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/entforge/entforge/runtime/validate"
)

// Identifier length bounds. The shared scheme needs room for a prefix, the
// timestamp, the payload, and the optional check digit.
const (
	minIdentLength = 24
	maxIdentLength = 64
)

func (s *Spec) validate() error {
	if len(s.Types) == 0 {
		return &SpecError{Message: "no types declared"}
	}
	seen := make(map[string]bool, len(s.Types))
	for _, t := range s.Types {
		if seen[t.Name] {
			return &SpecError{Type: t.Name, Message: "declared more than once"}
		}
		seen[t.Name] = true
		if err := t.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (t *TypeDescriptor) validate() error {
	if !identLike(t.Name) {
		return &SpecError{Type: t.Name, Message: "name must be a valid identifier"}
	}
	switch t.Kind {
	case KindStruct:
		if len(t.Variants) > 0 {
			return &SpecError{Type: t.Name, Message: "struct types cannot declare variants"}
		}
		if len(t.Fields) == 0 {
			return &SpecError{Type: t.Name, Message: "struct types must declare at least one field"}
		}
	case KindEnum:
		if len(t.Fields) > 0 {
			return &SpecError{Type: t.Name, Message: "enum types cannot declare fields"}
		}
		if len(t.Variants) == 0 {
			return &SpecError{Type: t.Name, Message: "enum types must declare at least one variant"}
		}
	default:
		return &SpecError{Type: t.Name, Message: `kind must be "struct" or "enum"`}
	}
	if err := t.validateFields(); err != nil {
		return err
	}
	if err := t.validateVariants(); err != nil {
		return err
	}
	return t.validateAttributes()
}

func (t *TypeDescriptor) validateFields() error {
	seen := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		if !identLike(f.Name) {
			return &SpecError{Type: t.Name, Field: f.Name, Message: "name must be a valid identifier"}
		}
		if seen[f.Name] {
			return &SpecError{Type: t.Name, Field: f.Name, Message: "declared more than once"}
		}
		seen[f.Name] = true
		if f.Type == "" {
			return &SpecError{Type: t.Name, Field: f.Name, Message: "missing declared type"}
		}
		if err := f.validateAttributes(t.Name); err != nil {
			return err
		}
	}
	return nil
}

func (t *TypeDescriptor) validateVariants() error {
	seen := make(map[string]bool, len(t.Variants))
	for _, v := range t.Variants {
		if !identLike(v.Name) {
			return &SpecError{Type: t.Name, Field: v.Name, Message: "variant name must be a valid identifier"}
		}
		if seen[v.Name] {
			return &SpecError{Type: t.Name, Field: v.Name, Message: "variant declared more than once"}
		}
		seen[v.Name] = true
	}
	return nil
}

// validateAttributes checks the shape of every recognized type-level
// attribute. Unrecognized keys are retained verbatim and never rejected.
func (t *TypeDescriptor) validateAttributes() error {
	if v, ok := t.Attributes.Lookup(AttrCacheTTL); ok {
		ttl, isInt := t.Attributes.Int(AttrCacheTTL)
		if !isInt || ttl < 0 {
			return &SpecError{Type: t.Name, Attr: AttrCacheTTL, Message: fmt.Sprintf("must be a non-negative integer, got %v", v)}
		}
	}
	if v, ok := t.Attributes.Lookup(AttrTable); ok {
		if s, isStr := v.(string); !isStr || s == "" {
			return &SpecError{Type: t.Name, Attr: AttrTable, Message: "must be a non-empty string"}
		}
	}
	if v, ok := t.Attributes.Lookup(AttrPrefix); ok {
		s, isStr := v.(string)
		if !isStr || s == "" {
			return &SpecError{Type: t.Name, Attr: AttrPrefix, Message: "must be a non-empty string"}
		}
		// Identifier segments join on dashes; a dash (or anything else
		// non-alphanumeric) inside the prefix would defeat parsing.
		if !alnumASCII(s) {
			return &SpecError{Type: t.Name, Attr: AttrPrefix, Message: fmt.Sprintf("must contain only letters and digits, got %q", s)}
		}
	}
	if v, ok := t.Attributes.Lookup(AttrLength); ok {
		n, isInt := t.Attributes.Int(AttrLength)
		if !isInt || n < minIdentLength || n > maxIdentLength {
			return &SpecError{Type: t.Name, Attr: AttrLength, Message: fmt.Sprintf("must be an integer between %d and %d, got %v", minIdentLength, maxIdentLength, v)}
		}
	}
	for _, key := range []string{AttrChecksum, AttrTax, AttrShipping} {
		if v, ok := t.Attributes.Lookup(key); ok {
			if _, isBool := v.(bool); !isBool {
				return &SpecError{Type: t.Name, Attr: key, Message: "must be a boolean"}
			}
		}
	}
	if t.Attributes.Has(AttrTransitions) {
		if t.Kind != KindEnum {
			return &SpecError{Type: t.Name, Attr: AttrTransitions, Message: "only enum types can declare transitions"}
		}
		override, err := t.TransitionOverride()
		if err != nil {
			return err
		}
		for from, targets := range override {
			if !t.HasVariant(from) {
				return &SpecError{Type: t.Name, Attr: AttrTransitions, Message: fmt.Sprintf("source %q is not a declared variant", from)}
			}
			for _, to := range targets {
				if !t.HasVariant(to) {
					return &SpecError{Type: t.Name, Attr: AttrTransitions, Message: fmt.Sprintf("target %q is not a declared variant", to)}
				}
			}
		}
	}
	return nil
}

func (f *FieldDescriptor) validateAttributes(typeName string) error {
	if v, ok := f.Attributes.Lookup(AttrValidate); ok {
		name, isStr := v.(string)
		if !isStr {
			return &SpecError{Type: typeName, Field: f.Name, Attr: AttrValidate, Message: "must be a rule name"}
		}
		if name != "none" && validate.KindOf(name) == validate.None {
			return &SpecError{Type: typeName, Field: f.Name, Attr: AttrValidate, Message: fmt.Sprintf("unknown rule %q", name)}
		}
	}
	if v, ok := f.Attributes.Lookup(AttrIdentity); ok {
		if _, isBool := v.(bool); !isBool {
			return &SpecError{Type: typeName, Field: f.Name, Attr: AttrIdentity, Message: "must be a boolean"}
		}
	}
	return nil
}

// alnumASCII reports whether s contains ASCII letters and digits only.
func alnumASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}

// identLike reports whether the name can serve as an identifier: a letter
// followed by letters, digits, or underscores.
func identLike(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case unicode.IsLetter(r):
		case r == '_' && i > 0:
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return utf8.ValidString(name)
}
