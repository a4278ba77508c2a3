// Package tax computes Brazilian transaction levies. All arithmetic is
// fixed-point decimal; rounding to the currency's minor unit happens once,
// on the aggregate, never per intermediate levy.
package tax

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/entforge/entforge/rules"
)

// minorUnit is the BRL minor-unit precision.
const minorUnit = 2

// ICMS returns the state goods levy on a subtotal. Unknown states resolve
// to the table's default rate.
func ICMS(t *rules.Tables, subtotal decimal.Decimal, state string) decimal.Decimal {
	return subtotal.Mul(t.Tax.ICMSRate(state))
}

// PIS returns the federal PIS levy on a subtotal.
func PIS(t *rules.Tables, subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(t.Tax.PIS.Dec())
}

// COFINS returns the federal COFINS levy on a subtotal.
func COFINS(t *rules.Tables, subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(t.Tax.COFINS.Dec())
}

// ISS returns the municipal service levy on a subtotal. Unknown cities
// resolve to the table's default rate.
func ISS(t *rules.Tables, subtotal decimal.Decimal, city string) decimal.Decimal {
	return subtotal.Mul(t.Tax.ISSRate(city))
}

// Total sums the applicable levies for a transaction: ISS replaces ICMS for
// services. The sum is rounded once, to the minor unit, at the end.
func Total(t *rules.Tables, subtotal decimal.Decimal, state, city string, isService bool) decimal.Decimal {
	var levy decimal.Decimal
	if isService {
		levy = ISS(t, subtotal, city)
	} else {
		levy = ICMS(t, subtotal, state)
	}
	return levy.Add(PIS(t, subtotal)).Add(COFINS(t, subtotal)).Round(minorUnit)
}

// NFEKey derives the fixed-format fiscal document key for an entity:
// NFE-<UTC issue timestamp>-<8 hex digits of the identity hash>. The key is
// deterministic in its inputs and unique within one entity instance; global
// uniqueness is the caller's responsibility.
func NFEKey(identity string, issuedAt time.Time) string {
	sum := sha256.Sum256([]byte(identity))
	return "NFE-" + issuedAt.UTC().Format("20060102150405") + "-" + strings.ToUpper(hex.EncodeToString(sum[:4]))
}
