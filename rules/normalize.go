package rules

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining diacritical marks so that "São Paulo" and
// "SAO PAULO" resolve to the same table key.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeCity canonicalizes a municipality name for table lookup:
// diacritics stripped, interior whitespace collapsed, upper-cased.
func NormalizeCity(city string) string {
	folded, _, err := transform.String(stripMarks, city)
	if err != nil {
		folded = city
	}
	return strings.ToUpper(strings.Join(strings.Fields(folded), " "))
}
