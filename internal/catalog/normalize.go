package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// PricePlaces is the number of decimal places a normalized price keeps.
const PricePlaces = 2

// Normalize returns the canonical form of a validated record: the name is
// capitalized and the price rounded to the cent. It is idempotent.
//
// Prices round half away from zero on their decimal value, so 19.995 becomes
// 20.00 and 1.005 becomes 1.01 even though neither is exact in binary.
func Normalize(r Record) Record {
	r.Name = CapitalizeName(r.Name)
	r.Price = r.Price.Round(PricePlaces)
	return r
}

// CapitalizeName upper-cases the first rune and lower-cases the rest.
// Rune count is preserved, so a name within length bounds stays within them.
func CapitalizeName(name string) string {
	if name == "" {
		return name
	}
	first, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(first)) + strings.Map(unicode.ToLower, name[size:])
}
