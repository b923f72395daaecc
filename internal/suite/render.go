package suite

import (
	"strings"

	"lexeval/internal/answer"
)

// RenderEntry builds the full prompt for an entry. Multiple-choice entries
// get their question and lettered choices appended to the template.
func (p Prompts) RenderEntry(variant Variant, entry Entry) string {
	prompt := p.Render(variant, entry.Word)
	if !entry.IsMultipleChoice() {
		return prompt
	}
	var builder strings.Builder
	builder.WriteString(prompt)
	builder.WriteString("\n\n")
	if strings.TrimSpace(entry.Question) != "" {
		builder.WriteString(entry.Question)
		builder.WriteString("\n")
	}
	for index, choice := range entry.Choices {
		builder.WriteString(answer.ChoiceLetter(index))
		builder.WriteString(") ")
		builder.WriteString(choice)
		builder.WriteString("\n")
	}
	builder.WriteString("\nResponde solo con la letra de la opción correcta.")
	return builder.String()
}
