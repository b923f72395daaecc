package answer

import (
	"errors"
	"html"
	"regexp"
	"strings"
)

// answerBlock matches one <answer>...</answer> block. Tags are case-insensitive
// and the body may span lines.
var answerBlock = regexp.MustCompile(`(?is)<answer>(.*?)</answer>`)

// ErrNoAnswer reports a reply without a non-empty <answer> block.
var ErrNoAnswer = errors.New("no <answer> block")

// ExtractAnswer returns the text of the last non-empty <answer> block in
// reply. Text around the block is ignored and entities like &amp; are decoded.
func ExtractAnswer(reply string) (string, error) {
	matches := answerBlock.FindAllStringSubmatch(reply, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		text := strings.TrimSpace(html.UnescapeString(matches[i][1]))
		if text != "" {
			return text, nil
		}
	}
	return "", ErrNoAnswer
}

// AnswerText returns the extracted answer, or the trimmed reply when there is
// no <answer> block.
func AnswerText(reply string) string {
	if text, err := ExtractAnswer(reply); err == nil {
		return text
	}
	return strings.TrimSpace(reply)
}
