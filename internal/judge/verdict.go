package judge

import (
	"strings"

	"lexeval/internal/store"
)

// ParseVerdict maps a judge reply to correct or incorrect. The reply is
// trimmed and lowercased; an empty reply is incorrect. Otherwise the leading
// token decides. recognized is false when the reply named neither verdict.
func ParseVerdict(reply string) (verdict string, recognized bool) {
	cleaned := strings.ToLower(strings.TrimSpace(reply))
	if cleaned == "" {
		return store.JudgmentIncorrect, true
	}
	switch cleaned {
	case store.JudgmentCorrect, store.JudgmentIncorrect:
		return cleaned, true
	}
	fields := strings.Fields(cleaned)
	token := strings.Trim(fields[0], "*_`'\"“”«».,:;!¡?¿()[]")
	switch token {
	case store.JudgmentCorrect:
		return store.JudgmentCorrect, true
	case store.JudgmentIncorrect:
		return store.JudgmentIncorrect, true
	}
	return store.JudgmentIncorrect, false
}

func verdictFor(ok bool) string {
	if ok {
		return store.JudgmentCorrect
	}
	return store.JudgmentIncorrect
}
