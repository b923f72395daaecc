package answer

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// bareLetter matches a reply that is only an option letter: "B", "b)", "(C)", "D.".
	bareLetter = regexp.MustCompile(`^\(?([A-Za-z])\s*[\)\.:]?$`)
	// leadingLetter matches a letter label followed by the option text: "B) Animal...".
	leadingLetter = regexp.MustCompile(`^\(?([A-Za-z])[\)\.:]\s+\S`)
	// labelledLetter matches "Respuesta: B", "La respuesta correcta es la (c)".
	labelledLetter = regexp.MustCompile(`(?i)\brespuesta(?:\s+correcta)?(?:\s+es)?\s*[:\-]?\s*(?:la\s+|opci[oó]n\s+)?\(?([A-Za-z])(?:[\)\.:,;]|\s|$)`)
)

// ChoiceLetter returns the option label for a zero-based index.
func ChoiceLetter(index int) string {
	return string(rune('A' + index))
}

// SelectChoice maps a model reply onto one of the offered choices.
// The second return value is false when no choice could be identified, in
// which case the first is the answer text itself.
func SelectChoice(output string, choices []string) (string, bool) {
	text := AnswerText(output)
	if len(choices) == 0 {
		return text, false
	}

	if index, ok := letterIndex(text, len(choices)); ok {
		return choices[index], true
	}

	normText := Normalize(text)
	for index, choice := range choices {
		if Normalize(choice) == normText {
			return choices[index], true
		}
	}

	found := -1
	for index, choice := range choices {
		normChoice := Normalize(choice)
		if normChoice == "" || !strings.Contains(normText, normChoice) {
			continue
		}
		if found != -1 {
			return text, false
		}
		found = index
	}
	if found != -1 {
		return choices[found], true
	}
	return text, false
}

// letterIndex finds an option letter in text and checks it is in range.
func letterIndex(text string, count int) (int, bool) {
	var letter string
	if match := bareLetter.FindStringSubmatch(text); match != nil {
		letter = match[1]
	} else if match := leadingLetter.FindStringSubmatch(text); match != nil {
		letter = match[1]
	} else if matches := labelledLetter.FindAllStringSubmatch(text, -1); len(matches) > 0 {
		letter = matches[len(matches)-1][1]
	}
	if letter == "" {
		return 0, false
	}
	index := int(unicode.ToUpper(rune(letter[0])) - 'A')
	return index, index >= 0 && index < count
}
