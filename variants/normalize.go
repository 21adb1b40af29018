package variants

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var punctuation = strings.NewReplacer(
	"‘", "'", "’", "'", "′", "'", "‚", "'", "`", "'",
	"“", `"`, "”", `"`, "„", `"`,
	"–", "-", "—", "-", "−", "-",
)

// StripAccents removes combining marks after canonical decomposition,
// so "José Peñaflor" becomes "Jose Penaflor". Case is preserved.
func StripAccents(s string) string {
	// transform.Chain keeps per-use state; build one per call so concurrent
	// callers never share it.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Fold strips accents, unifies apostrophe, quote and dash variants and
// trims surrounding space. Case is preserved.
func Fold(s string) string {
	return strings.TrimSpace(punctuation.Replace(StripAccents(s)))
}

// Normalize is Fold followed by lower-casing.
func Normalize(s string) string {
	return strings.ToLower(Fold(s))
}
