package answer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningTilde survives folding so ñ stays distinct from n.
const combiningTilde = '\u0303'

// Normalize folds text for comparison: accents dropped (except ñ), Spanish
// lowercasing, whitespace collapsed and surrounding punctuation trimmed.
func Normalize(value string) string {
	// Transformers and casers are stateful, so each call builds its own.
	fold := transform.Chain(
		norm.NFD,
		runes.Remove(runes.Predicate(func(r rune) bool {
			return unicode.Is(unicode.Mn, r) && r != combiningTilde
		})),
		norm.NFC,
	)
	folded, _, err := transform.String(fold, value)
	if err != nil {
		folded = value
	}
	folded = cases.Lower(language.Spanish).String(folded)
	folded = strings.Join(strings.Fields(folded), " ")
	return strings.TrimFunc(folded, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
}

// Equal reports whether two strings match after normalization.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
