package report

import (
	"context"
	"strconv"
	"strings"
)

// htmlHeaders extends the terminal table headers with the judged counts.
func htmlHeaders() []string {
	headers := append([]string{}, tableHeaders...)
	return append(headers, "Judged A", "Judged B", "Words")
}

// htmlCells formats the numeric columns of one report row.
func htmlCells(item ModelSummary) []string {
	return []string{
		formatAccuracy(item.PromptAAccuracy),
		strconv.Itoa(item.PromptACorrect),
		formatAccuracy(item.PromptBAccuracy),
		strconv.Itoa(item.PromptBCorrect),
		strconv.Itoa(item.JudgedA),
		strconv.Itoa(item.JudgedB),
		strconv.Itoa(item.Total),
	}
}

// RenderHTML renders the report page into a string.
func RenderHTML(ctx context.Context, summary Summary, models []string) (string, error) {
	var builder strings.Builder
	if err := ReportPage(summary, models).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// WriteHTML renders the report page to path.
func WriteHTML(ctx context.Context, path string, summary Summary, models []string) error {
	html, err := RenderHTML(ctx, summary, models)
	if err != nil {
		return err
	}
	return writeFile(path, []byte(html))
}
