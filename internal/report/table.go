package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableTitle heads the console summary.
const TableTitle = "Model Performance Summary"

var tableHeaders = []string{
	"Model",
	"Prompt A Accuracy (%)",
	"Prompt A Correct",
	"Prompt B Accuracy (%)",
	"Prompt B Correct",
}

// column colours follow the header order
var columnColors = []lipgloss.Color{"6", "5", "2", "4", "3"}

// RenderTable writes the summary as a console table.
func RenderTable(w io.Writer, summary Summary, models []string, noColor bool) error {
	rows := make([][]string, 0, len(summary))
	for _, model := range orderedModels(summary, models) {
		item := summary[model]
		rows = append(rows, []string{
			model,
			formatAccuracy(item.PromptAAccuracy),
			strconv.Itoa(item.PromptACorrect),
			formatAccuracy(item.PromptBAccuracy),
			strconv.Itoa(item.PromptBCorrect),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(tableHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			if row == table.HeaderRow {
				style = style.Bold(!noColor)
				return style
			}
			if !noColor && col < len(columnColors) {
				style = style.Foreground(columnColors[col])
			}
			return style
		})

	title := TableTitle
	if !noColor {
		title = lipgloss.NewStyle().Italic(true).Render(TableTitle)
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n", title, t.Render())
	return err
}
