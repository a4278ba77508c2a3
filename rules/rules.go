// Package rules holds the read-only configuration data consumed by the
// pattern generators and by generated code: tax rates by jurisdiction,
// shipping zones and tiers, the default status-transition topology, and the
// field-name-to-validation-rule mapping.
//
// Tables are loaded once and never mutated; a new document is swapped in
// atomically as a whole. Lookup misses resolve to documented defaults so
// that unseen jurisdictions do not break order processing.
package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/entforge/entforge"
)

// Rate is a fixed-point fractional rate or monetary amount. It decodes from
// a YAML decimal string so that values never pass through binary floats.
type Rate decimal.Decimal

// Dec returns the rate as a decimal.
func (r Rate) Dec() decimal.Decimal { return decimal.Decimal(r) }

// String returns the decimal string representation.
func (r Rate) String() string { return decimal.Decimal(r).String() }

// UnmarshalYAML decodes a scalar node as a decimal string.
func (r *Rate) UnmarshalYAML(node *yaml.Node) error {
	d, err := decimal.NewFromString(node.Value)
	if err != nil {
		return NewRulesError("rate", node.Value, "not a decimal string", err)
	}
	*r = Rate(d)
	return nil
}

// Tables is one versioned rule-table document.
type Tables struct {
	Version     string          `yaml:"version"`
	Tax         TaxTable        `yaml:"tax"`
	Shipping    ShippingTable   `yaml:"shipping"`
	Transitions TransitionTable `yaml:"transitions"`
	Validation  ValidationTable `yaml:"validation"`
}

// TaxTable maps jurisdictions to levy rates.
type TaxTable struct {
	ICMS        map[string]Rate `yaml:"icms"`
	DefaultICMS Rate            `yaml:"default_icms"`
	PIS         Rate            `yaml:"pis"`
	COFINS      Rate            `yaml:"cofins"`
	ISS         map[string]Rate `yaml:"iss"`
	DefaultISS  Rate            `yaml:"default_iss"`

	issIndex map[string]Rate // keys normalized with NormalizeCity
}

// ICMSRate returns the ICMS rate for a state, or the documented default for
// an unknown jurisdiction.
func (t *TaxTable) ICMSRate(state string) decimal.Decimal {
	if r, ok := t.ICMS[strings.ToUpper(strings.TrimSpace(state))]; ok {
		return r.Dec()
	}
	return t.DefaultICMS.Dec()
}

// ISSRate returns the ISS rate for a municipality. Matching is accent- and
// case-insensitive; unknown cities resolve to the documented default.
func (t *TaxTable) ISSRate(city string) decimal.Decimal {
	if r, ok := t.issIndex[NormalizeCity(city)]; ok {
		return r.Dec()
	}
	return t.DefaultISS.Dec()
}

// KnownCity reports whether the municipality has an explicit ISS entry.
func (t *TaxTable) KnownCity(city string) bool {
	_, ok := t.issIndex[NormalizeCity(city)]
	return ok
}

// KnownState reports whether the state has an explicit ICMS entry.
func (t *TaxTable) KnownState(state string) bool {
	_, ok := t.ICMS[strings.ToUpper(strings.TrimSpace(state))]
	return ok
}

// ShippingTable maps state pairs to zones and zones to costs and day counts.
type ShippingTable struct {
	Regions           map[string][]string       `yaml:"regions"`
	Adjacent          map[string][]string       `yaml:"adjacent"`
	Distant           map[string][]string       `yaml:"distant"`
	Multipliers       map[string]Rate           `yaml:"multipliers"`
	BaseCost          Rate                      `yaml:"base_cost"`
	PerKg             Rate                      `yaml:"per_kg"`
	InternationalFlat Rate                      `yaml:"international_flat"`
	DeliveryDays      map[string]map[string]int `yaml:"delivery_days"`
	Carriers          []CarrierRule             `yaml:"carriers"`

	regionOf map[string]string // UF -> region name
}

// CarrierRule is one entry of the ordered carrier-priority list. A zero
// MaxWeightKg means unbounded; an empty Zones list matches every zone.
type CarrierRule struct {
	Name        string   `yaml:"name"`
	MaxWeightKg float64  `yaml:"max_weight_kg"`
	Zones       []string `yaml:"zones"`
}

// RegionOf returns the shipping region a state belongs to.
func (t *ShippingTable) RegionOf(state string) (string, bool) {
	r, ok := t.regionOf[strings.ToUpper(strings.TrimSpace(state))]
	return r, ok
}

// AdjacentRegions reports whether two regions are declared adjacent.
func (t *ShippingTable) AdjacentRegions(a, b string) bool {
	return slices.Contains(t.Adjacent[a], b) || slices.Contains(t.Adjacent[b], a)
}

// DistantRegions reports whether two regions are declared distant.
func (t *ShippingTable) DistantRegions(a, b string) bool {
	return slices.Contains(t.Distant[a], b) || slices.Contains(t.Distant[b], a)
}

// Multiplier returns the cost multiplier for a zone name.
func (t *ShippingTable) Multiplier(zone string) decimal.Decimal {
	return t.Multipliers[zone].Dec()
}

// Days returns the delivery estimate for a zone and service tier.
func (t *ShippingTable) Days(zone, tier string) (int, bool) {
	tiers, ok := t.DeliveryDays[zone]
	if !ok {
		return 0, false
	}
	d, ok := tiers[tier]
	return d, ok
}

// TransitionTable is the default status-transition topology applied to enums
// that carry no explicit transition-graph override.
type TransitionTable struct {
	CancelSink string              `yaml:"cancel_sink"`
	RefundSink string              `yaml:"refund_sink"`
	Edges      map[string][]string `yaml:"edges"`
}

// ValidationTable is the ordered field-name-to-rule mapping.
type ValidationTable struct {
	Patterns []NamePattern `yaml:"patterns"`
}

// NamePattern binds a field-name pattern to a validation rule name. A field
// matches on its exact name or on a "_<match>" suffix.
type NamePattern struct {
	Match string `yaml:"match"`
	Rule  string `yaml:"rule"`
}

// RuleFor returns the validation rule name resolved for a field name, in
// pattern order, or "" when no pattern matches.
func (t *ValidationTable) RuleFor(field string) string {
	name := strings.ToLower(strings.TrimSpace(field))
	for _, p := range t.Patterns {
		if name == p.Match || strings.HasSuffix(name, "_"+p.Match) {
			return p.Rule
		}
	}
	return ""
}

// RulesError reports a malformed or inconsistent rule-table document.
type RulesError struct {
	Section string
	Value   any
	Message string
	Cause   error
}

// Error returns the error string.
func (e *RulesError) Error() string {
	var b strings.Builder
	b.WriteString("rules: invalid tables")
	if e.Section != "" {
		b.WriteString(" in section ")
		b.WriteString(e.Section)
	}
	if e.Value != nil {
		fmt.Fprintf(&b, " (value: %v)", e.Value)
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
func (e *RulesError) Unwrap() error { return e.Cause }

// Is reports whether the target matches the sentinel for RulesError.
func (e *RulesError) Is(target error) bool { return target == entforge.ErrInvalidRules }

// NewRulesError creates a new RulesError.
func NewRulesError(section string, value any, message string, cause error) *RulesError {
	return &RulesError{Section: section, Value: value, Message: message, Cause: cause}
}
