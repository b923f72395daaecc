package answer

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity returns 1 - levenshtein/maxLen over the normalized runes of a and b.
func Similarity(a, b string) float64 {
	left := Normalize(a)
	right := Normalize(b)
	longest := max(utf8.RuneCountInString(left), utf8.RuneCountInString(right))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(left, right))/float64(longest)
}

// FuzzyMatch reports whether candidate is close enough to reference.
// A candidate that contains the whole reference always matches.
func FuzzyMatch(candidate, reference string, threshold float64) bool {
	normCandidate := Normalize(candidate)
	normReference := Normalize(reference)
	if normReference == "" {
		return false
	}
	if strings.Contains(normCandidate, normReference) {
		return true
	}
	return Similarity(candidate, reference) >= threshold
}
