package live

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"lexeval/internal/runner"
)

// formatIndex formats an item index.
func formatIndex(index int) string {
	return pad2(index + 1)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return fmtInt(value)
	}
	return "0" + fmtInt(value)
}

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatWord truncates a word for display.
func formatWord(word string) string {
	return truncate(strings.Join(strings.Fields(word), " "), 40)
}

// truncate shortens text to limit runes.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-3]) + "..."
}

// statusLabel maps status codes to display labels.
func statusLabel(status runner.ItemEventType) string {
	if status == "" {
		return string(runner.ItemQueued)
	}
	return string(status)
}

// formatDetail renders the reason or error for a finished row.
func formatDetail(row ItemRow) string {
	if row.Error != "" {
		return truncate(row.Error, 28)
	}
	return truncate(row.Reason, 28)
}

// formatDuration renders a rounded duration for display.
func formatDuration(duration time.Duration) string {
	if duration <= 0 {
		return "0s"
	}
	return duration.Round(100 * time.Millisecond).String()
}

// formatRowDuration returns elapsed or total time for a row.
func formatRowDuration(row ItemRow, now time.Time) string {
	if row.WallTime > 0 {
		return formatDuration(row.WallTime)
	}
	if !row.FinishedAt.IsZero() && !row.StartedAt.IsZero() {
		return formatDuration(row.FinishedAt.Sub(row.StartedAt))
	}
	if !row.StartedAt.IsZero() && row.Status == runner.ItemRunning {
		return formatDuration(now.Sub(row.StartedAt))
	}
	return ""
}

// formatPhaseEnd formats a phase completion message.
func formatPhaseEnd(stats runner.PhaseStats) string {
	line := string(stats.Phase) + " " + stats.Model + " finished: " +
		fmtInt(stats.Completed) + " done, " +
		fmtInt(stats.Skipped) + " skipped, " +
		fmtInt(stats.Errors) + " errors"
	if stats.Phase == runner.PhaseJudge {
		line += " (" + fmtInt(stats.Correct) + " correct)"
	}
	return line
}

// statusStyle selects a style for a given status.
func statusStyle(status runner.ItemEventType) lipgloss.Style {
	color := lipgloss.Color("244")
	switch status {
	case runner.ItemCorrect, runner.ItemSaved:
		color = lipgloss.Color("42")
	case runner.ItemIncorrect, runner.ItemEmpty:
		color = lipgloss.Color("220")
	case runner.ItemError:
		color = lipgloss.Color("196")
	case runner.ItemRunning:
		color = lipgloss.Color("33")
	case runner.ItemQueued, runner.ItemSkipped:
		color = lipgloss.Color("246")
	}
	return lipgloss.NewStyle().Foreground(color)
}
