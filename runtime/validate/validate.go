// Package validate evaluates field validation rules and accumulates every
// failure instead of stopping at the first, so callers can show a user all
// invalid fields at once.
package validate

import (
	"fmt"
	"strings"
)

// Kind identifies a validation rule.
type Kind uint8

// Validation rule kinds.
const (
	None Kind = iota
	Required
	Email
	Phone
	NationalTaxID
	PostalCode
	RegionCode
)

var kindNames = [...]string{
	None:          "none",
	Required:      "required",
	Email:         "email",
	Phone:         "phone",
	NationalTaxID: "national_tax_id",
	PostalCode:    "postal_code",
	RegionCode:    "region_code",
}

// String returns the rule-table name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// KindOf maps a rule-table name to a Kind. Unknown names map to None:
// absence of a resolvable rule is success, not failure.
func KindOf(name string) Kind {
	for k, n := range kindNames {
		if n == name {
			return Kind(k)
		}
	}
	return None
}

// Check evaluates one rule against one value. Except for Required, an empty
// value passes: format rules apply only to populated fields.
func Check(value string, kind Kind) error {
	if kind == Required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("is required")
		}
		return nil
	}
	if strings.TrimSpace(value) == "" {
		return nil
	}
	switch kind {
	case None:
		return nil
	case Email:
		if !IsEmail(value) {
			return fmt.Errorf("invalid email: %s", value)
		}
	case Phone:
		if !IsPhone(value) {
			return fmt.Errorf("invalid Brazilian phone: %s", value)
		}
	case NationalTaxID:
		if !IsCPF(value) && !IsCNPJ(value) {
			return fmt.Errorf("invalid CPF/CNPJ: %s", value)
		}
	case PostalCode:
		if !IsCEP(value) {
			return fmt.Errorf("invalid CEP: %s", value)
		}
	case RegionCode:
		if !IsUF(value) {
			return fmt.Errorf("invalid state code: %s", value)
		}
	}
	return nil
}

// FieldResult is the structured outcome of one field evaluation.
type FieldResult struct {
	Field   string
	Rule    Kind
	OK      bool
	Message string
}

// Validator evaluates fields one by one and accumulates failures.
type Validator struct {
	order   []string
	results map[string]FieldResult
}

// New returns an empty validator.
func New() *Validator {
	return &Validator{results: make(map[string]FieldResult)}
}

// Field evaluates one field against a rule kind and records the outcome.
// Re-validating a field replaces its previous result.
func (v *Validator) Field(name, value string, kind Kind) *Validator {
	return v.record(name, kind, Check(value, kind))
}

// Custom evaluates one field against a caller-supplied predicate.
func (v *Validator) Custom(name, value string, check func(string) error) *Validator {
	return v.record(name, None, check(value))
}

func (v *Validator) record(name string, kind Kind, err error) *Validator {
	if _, seen := v.results[name]; !seen {
		v.order = append(v.order, name)
	}
	r := FieldResult{Field: name, Rule: kind, OK: err == nil}
	if err != nil {
		r.Message = err.Error()
	}
	v.results[name] = r
	return v
}

// Context returns the field-indexed view of the evaluation, for every field
// seen, passing or not.
func (v *Validator) Context() map[string]FieldResult {
	out := make(map[string]FieldResult, len(v.results))
	for name, r := range v.results {
		out[name] = r
	}
	return out
}

// Err returns nil when every evaluated field passed, or an *Errors value
// holding every failure in field evaluation order.
func (v *Validator) Err() error {
	var failed []FieldResult
	for _, name := range v.order {
		if r := v.results[name]; !r.OK {
			failed = append(failed, r)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return &Errors{failed: failed}
}

// Errors aggregates every validation failure of one evaluation.
type Errors struct {
	failed []FieldResult
}

// Error returns all failures joined into one message.
func (e *Errors) Error() string {
	msgs := make([]string, len(e.failed))
	for i, r := range e.failed {
		msgs[i] = r.Field + ": " + r.Message
	}
	return "validate: " + strings.Join(msgs, "; ")
}

// Fields returns the failure message per field name.
func (e *Errors) Fields() map[string]string {
	out := make(map[string]string, len(e.failed))
	for _, r := range e.failed {
		out[r.Field] = r.Message
	}
	return out
}

// Messages returns the failure messages in field evaluation order.
func (e *Errors) Messages() []string {
	msgs := make([]string, len(e.failed))
	for i, r := range e.failed {
		msgs[i] = r.Field + ": " + r.Message
	}
	return msgs
}

// Len returns the number of failed fields.
func (e *Errors) Len() int { return len(e.failed) }
