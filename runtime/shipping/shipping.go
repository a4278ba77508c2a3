// Package shipping computes shipping costs, delivery estimates, and carrier
// recommendations over the zone tables in the rules package.
package shipping

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/entforge/entforge/rules"
)

// Zone classifies an origin/destination state pair, ordered cheapest first.
type Zone uint8

// Shipping zones.
const (
	ZoneSameState Zone = iota
	ZoneSameRegion
	ZoneAdjacentRegion
	ZoneCrossRegion
	ZoneDistantRegion
)

var zoneNames = [...]string{
	ZoneSameState:      "same_state",
	ZoneSameRegion:     "same_region",
	ZoneAdjacentRegion: "adjacent_region",
	ZoneCrossRegion:    "cross_region",
	ZoneDistantRegion:  "distant_region",
}

// String returns the zone's rule-table key.
func (z Zone) String() string {
	if int(z) < len(zoneNames) {
		return zoneNames[z]
	}
	return "distant_region"
}

// ResolveZone classifies an origin/destination pair. A pair involving an
// unknown state resolves to the most conservative (highest-cost) zone
// rather than failing, so that unseen jurisdictions do not break order
// processing.
func ResolveZone(t *rules.Tables, origin, dest string) Zone {
	o := strings.ToUpper(strings.TrimSpace(origin))
	d := strings.ToUpper(strings.TrimSpace(dest))
	or, ok := t.Shipping.RegionOf(o)
	if !ok {
		return ZoneDistantRegion
	}
	dr, ok := t.Shipping.RegionOf(d)
	if !ok {
		return ZoneDistantRegion
	}
	switch {
	case o == d:
		return ZoneSameState
	case or == dr:
		return ZoneSameRegion
	case t.Shipping.AdjacentRegions(or, dr):
		return ZoneAdjacentRegion
	case t.Shipping.DistantRegions(or, dr):
		return ZoneDistantRegion
	default:
		return ZoneCrossRegion
	}
}

// Cost returns the shipping cost: zone base rate plus a per-kilogram
// surcharge, scaled by the zone multiplier. Non-Brazilian destinations pay
// the international flat rate.
func Cost(t *rules.Tables, itemsCount int, weightKg float64, origin, dest, country string) decimal.Decimal {
	if !strings.EqualFold(strings.TrimSpace(country), "BR") {
		return t.Shipping.InternationalFlat.Dec()
	}
	if weightKg < 0 {
		weightKg = 0
	}
	weight := decimal.NewFromFloat(weightKg).Mul(t.Shipping.PerKg.Dec())
	subtotal := t.Shipping.BaseCost.Dec().Add(weight)
	zone := ResolveZone(t, origin, dest)
	return subtotal.Mul(t.Shipping.Multiplier(zone.String())).Round(2)
}

// DeliveryDays returns the estimated business-day count for a route and
// service tier. Unknown tiers are treated as the slowest tier; estimates
// never increase as the tier improves.
func DeliveryDays(t *rules.Tables, origin, dest, tier string) int {
	zone := ResolveZone(t, origin, dest)
	name := strings.ToLower(strings.TrimSpace(tier))
	if d, ok := t.Shipping.Days(zone.String(), name); ok {
		return d
	}
	d, _ := t.Shipping.Days(zone.String(), "economy")
	return d
}

// Carrier returns the recommended carrier for a route and weight: the first
// entry of the ordered carrier table whose constraints the route satisfies.
// Ties cannot occur because priority is the list order.
func Carrier(t *rules.Tables, origin, dest string, weightKg float64) string {
	zone := ResolveZone(t, origin, dest)
	for _, c := range t.Shipping.Carriers {
		if len(c.Zones) > 0 && !slices.Contains(c.Zones, zone.String()) {
			continue
		}
		if c.MaxWeightKg > 0 && weightKg >= c.MaxWeightKg {
			continue
		}
		return c.Name
	}
	// Unreachable: table validation requires an unconstrained last carrier.
	return ""
}
