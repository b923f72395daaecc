package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Fixed column widths; the word column takes the rest.
const (
	indexWidth   = 5
	variantWidth = 7
	statusWidth  = 12
	timeWidth    = 8
	detailWidth  = 28
	minWordWidth = 12
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// defaultColumns returns columns sized for an 80-column terminal.
func defaultColumns() []table.Column {
	return columnsForWidth(80)
}

// columnsForWidth sizes the columns for a terminal width.
func columnsForWidth(width int) []table.Column {
	fixed := indexWidth + variantWidth + statusWidth + timeWidth + detailWidth + 12
	wordWidth := width - fixed
	if wordWidth < minWordWidth {
		wordWidth = minWordWidth
	}
	return []table.Column{
		{Title: "#", Width: indexWidth},
		{Title: "Word", Width: wordWidth},
		{Title: "Variant", Width: variantWidth},
		{Title: "Status", Width: statusWidth},
		{Title: "Time", Width: timeWidth},
		{Title: "Detail", Width: detailWidth},
	}
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			formatIndex(row.Index),
			formatWord(row.Word),
			string(row.Variant),
			statusLabel(row.Status),
			formatRowDuration(row, now),
			formatDetail(row),
		})
	}
	return rows
}
