// Package textutil holds the small text-normalization helpers shared
// by the extractor and the persistence layer — diacritic stripping for
// search_text columns (spec §4.6, invariant 4).
package textutil

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// StripDiacritics applies Unicode compatibility decomposition (NFKD)
// and drops every non-spacing-mark code point, matching the original
// collector-rs `s.nfkd().filter(|c| !c.is_mark_nonspacing())`. ASCII
// input passes through unchanged.
func StripDiacritics(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return out
}
