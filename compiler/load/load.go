// Package load parses raw type descriptions into validated descriptors the
// generators consume. The input is declarative YAML: type name, kind, fields
// or variants, and attribute key/value pairs. Attribute order is preserved
// exactly as written so descriptor fingerprints are stable, and unrecognized
// attributes are retained verbatim for generators that may consume them.
package load

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Kind is the structural kind of a described type.
type Kind uint8

const (
	// KindInvalid is the zero kind, produced only by a bad spec.
	KindInvalid Kind = iota
	// KindStruct describes a record with named fields.
	KindStruct
	// KindEnum describes a closed set of named variants.
	KindEnum
)

var kindNames = map[Kind]string{KindStruct: "struct", KindEnum: "enum"}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "invalid"
}

// UnmarshalYAML decodes "struct" or "enum".
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	switch s {
	case "struct":
		*k = KindStruct
	case "enum":
		*k = KindEnum
	default:
		return fmt.Errorf("unknown kind %q", s)
	}
	return nil
}

// Attribute is one key/value pair attached to a type or field.
type Attribute struct {
	Key   string
	Value any
}

// Attributes is an ordered attribute list. Order is document order and is
// part of the descriptor's identity.
type Attributes []Attribute

// UnmarshalYAML decodes a YAML mapping into an ordered attribute list.
func (as *Attributes) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("attributes: expected a mapping, got %v", node.Tag)
	}
	out := make(Attributes, 0, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		var (
			key   string
			value any
		)
		if err := node.Content[i].Decode(&key); err != nil {
			return err
		}
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("attribute %q: %w", key, err)
		}
		out = append(out, Attribute{Key: key, Value: value})
	}
	*as = out
	return nil
}

// Lookup returns the value of the first attribute with the given key.
func (as Attributes) Lookup(key string) (any, bool) {
	for _, a := range as {
		if a.Key == key {
			return a.Value, true
		}
	}
	return nil, false
}

// Has reports whether the key is present.
func (as Attributes) Has(key string) bool {
	_, ok := as.Lookup(key)
	return ok
}

// String returns the attribute as a string, when present and a string.
func (as Attributes) String(key string) (string, bool) {
	v, ok := as.Lookup(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Int returns the attribute as an int, when present and integral.
func (as Attributes) Int(key string) (int, bool) {
	v, ok := as.Lookup(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	}
	return 0, false
}

// Bool returns the attribute as a bool, when present and boolean.
func (as Attributes) Bool(key string) (bool, bool) {
	v, ok := as.Lookup(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Attribute keys recognized by the built-in generators. Keys outside this
// set pass through parsing untouched.
const (
	AttrTable       = "table"
	AttrCacheTTL    = "cache_ttl"
	AttrTransitions = "transitions"
	AttrPrefix      = "prefix"
	AttrLength      = "length"
	AttrChecksum    = "checksum"
	AttrTax         = "tax"
	AttrShipping    = "shipping"
	AttrValidate    = "validate"
	AttrIdentity    = "identity"
)

// TypeDescriptor is the validated description of one type. It is immutable
// once parsed; generators read it, never mutate it.
type TypeDescriptor struct {
	Name       string               `yaml:"name"`
	Kind       Kind                 `yaml:"kind"`
	Fields     []*FieldDescriptor   `yaml:"fields,omitempty"`
	Variants   []*VariantDescriptor `yaml:"variants,omitempty"`
	Attributes Attributes           `yaml:"attributes,omitempty"`
}

// FieldDescriptor describes one struct field. The field name drives default
// validation-rule dispatch unless an explicit attribute overrides it.
type FieldDescriptor struct {
	Name       string     `yaml:"name"`
	Type       string     `yaml:"type"`
	Attributes Attributes `yaml:"attributes,omitempty"`
}

// VariantDescriptor describes one enum variant and its state-machine role.
type VariantDescriptor struct {
	Name        string `yaml:"name"`
	Final       bool   `yaml:"final,omitempty"`
	Cancellable bool   `yaml:"cancellable,omitempty"`
	Refundable  bool   `yaml:"refundable,omitempty"`
}

// Spec is a parsed generation request: one or more type descriptors.
type Spec struct {
	Types []*TypeDescriptor `yaml:"types"`
}

// Parse decodes and validates a raw spec document.
func Parse(b []byte) (*Spec, error) {
	s := &Spec{}
	if err := yaml.Unmarshal(b, s); err != nil {
		return nil, &SpecError{Message: "malformed document", cause: err}
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ParseFile reads and parses the spec document at path.
func ParseFile(path string) (*Spec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Type returns the descriptor with the given name, or nil.
func (s *Spec) Type(name string) *TypeDescriptor {
	for _, t := range s.Types {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Field returns the field descriptor with the given name, or nil.
func (t *TypeDescriptor) Field(name string) *FieldDescriptor {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Variant returns the variant descriptor with the given name, or nil.
func (t *TypeDescriptor) Variant(name string) *VariantDescriptor {
	for _, v := range t.Variants {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// HasVariant reports whether the enum declares the named variant.
func (t *TypeDescriptor) HasVariant(name string) bool {
	return t.Variant(name) != nil
}

// TransitionOverride returns the normalized transitions attribute as a
// from-variant to target-list mapping, or nil when absent.
func (t *TypeDescriptor) TransitionOverride() (map[string][]string, error) {
	v, ok := t.Attributes.Lookup(AttrTransitions)
	if !ok {
		return nil, nil
	}
	raw, ok := v.(map[string]any)
	if !ok {
		return nil, &SpecError{Type: t.Name, Attr: AttrTransitions, Message: "must be a mapping of variant to target list"}
	}
	out := make(map[string][]string, len(raw))
	for from, targets := range raw {
		switch ts := targets.(type) {
		case string:
			out[from] = []string{ts}
		case []any:
			list := make([]string, 0, len(ts))
			for _, target := range ts {
				s, ok := target.(string)
				if !ok {
					return nil, &SpecError{Type: t.Name, Attr: AttrTransitions, Message: fmt.Sprintf("target of %q must be a string", from)}
				}
				list = append(list, s)
			}
			out[from] = list
		default:
			return nil, &SpecError{Type: t.Name, Attr: AttrTransitions, Message: fmt.Sprintf("targets of %q must be a string or list", from)}
		}
	}
	return out, nil
}
