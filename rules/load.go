package rules

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var (
	defaultOnce   sync.Once
	defaultTables *Tables
	active        atomic.Pointer[Tables]
)

// Default returns the embedded default tables. The embedded document is part
// of the build; a decode failure is a build defect and panics.
func Default() *Tables {
	defaultOnce.Do(func() {
		t, err := Decode(defaultsYAML)
		if err != nil {
			panic(fmt.Sprintf("rules: embedded defaults are invalid: %v", err))
		}
		defaultTables = t
	})
	return defaultTables
}

// Active returns the process-wide tables: the last document passed to Swap,
// or the embedded defaults when none was.
func Active() *Tables {
	if t := active.Load(); t != nil {
		return t
	}
	return Default()
}

// Swap atomically installs a new table document for the whole process and
// returns the previous one. There is no partial update.
func Swap(t *Tables) *Tables {
	prev := active.Swap(t)
	if prev == nil {
		return Default()
	}
	return prev
}

// Load decodes and validates a rule-table document from a reader.
func Load(r io.Reader) (*Tables, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, NewRulesError("", nil, "read document", err)
	}
	return Decode(raw)
}

// LoadFile decodes and validates a rule-table document from a file.
func LoadFile(path string) (*Tables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, NewRulesError("", path, "read document", err)
	}
	return Decode(raw)
}

// Decode decodes and validates a rule-table document.
func Decode(raw []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, NewRulesError("", nil, "decode document", err)
	}
	if err := t.finish(); err != nil {
		return nil, err
	}
	return &t, nil
}

// zoneNames is the fixed zone vocabulary, ordered cheapest first.
var zoneNames = []string{"same_state", "same_region", "adjacent_region", "cross_region", "distant_region"}

// tierNames is the fixed service-tier vocabulary, ordered fastest first.
var tierNames = []string{"express", "standard", "economy"}

// finish builds lookup indexes and validates global consistency.
func (t *Tables) finish() error {
	if t.Version == "" {
		return NewRulesError("version", nil, "missing version", nil)
	}
	t.Tax.issIndex = make(map[string]Rate, len(t.Tax.ISS))
	for city, rate := range t.Tax.ISS {
		t.Tax.issIndex[NormalizeCity(city)] = rate
	}
	t.Shipping.regionOf = make(map[string]string)
	for region, states := range t.Shipping.Regions {
		for _, uf := range states {
			if prev, ok := t.Shipping.regionOf[uf]; ok && prev != region {
				return NewRulesError("shipping.regions", uf, "state assigned to two regions", nil)
			}
			t.Shipping.regionOf[uf] = region
		}
	}
	for _, zone := range zoneNames {
		if _, ok := t.Shipping.Multipliers[zone]; !ok {
			return NewRulesError("shipping.multipliers", zone, "missing zone multiplier", nil)
		}
		tiers, ok := t.Shipping.DeliveryDays[zone]
		if !ok {
			return NewRulesError("shipping.delivery_days", zone, "missing zone", nil)
		}
		// Day counts must not increase as the service tier improves.
		prev := 0
		for _, tier := range tierNames {
			d, ok := tiers[tier]
			if !ok {
				return NewRulesError("shipping.delivery_days", zone+"."+tier, "missing tier", nil)
			}
			if d < 1 {
				return NewRulesError("shipping.delivery_days", zone+"."+tier, "day count must be positive", nil)
			}
			if d < prev {
				return NewRulesError("shipping.delivery_days", zone+"."+tier, "slower tier must not beat faster tier", nil)
			}
			prev = d
		}
	}
	if len(t.Shipping.Carriers) == 0 {
		return NewRulesError("shipping.carriers", nil, "empty carrier list", nil)
	}
	last := t.Shipping.Carriers[len(t.Shipping.Carriers)-1]
	if last.MaxWeightKg != 0 || len(last.Zones) != 0 {
		return NewRulesError("shipping.carriers", last.Name, "last carrier must be unconstrained", nil)
	}
	if t.Transitions.CancelSink == "" || t.Transitions.RefundSink == "" {
		return NewRulesError("transitions", nil, "cancel_sink and refund_sink are required", nil)
	}
	for _, p := range t.Validation.Patterns {
		if p.Match == "" || p.Rule == "" {
			return NewRulesError("validation.patterns", p, "match and rule are required", nil)
		}
	}
	return nil
}
