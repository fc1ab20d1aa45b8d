package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Label canonicalizes a sentiment label for storage: lowercase, diacritics
// removed, quote/comma/period characters dropped, surrounding space trimmed.
// Deterministic and idempotent.
func Label(raw string) string {
	s, _, err := transform.String(stripMarks, raw)
	if err != nil {
		s = raw
	}
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\'', '"', ',', '.', '!', '?':
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
