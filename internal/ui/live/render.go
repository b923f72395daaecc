package live

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"lexeval/internal/runner"
)

// renderHeader renders the run header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	elapsed := ""
	if !state.StartedAt.IsZero() {
		elapsed = now.Sub(state.StartedAt).Round(100 * time.Millisecond).String()
	}
	line := "Run " + state.RunID
	if len(state.Models) > 0 {
		line += " | Models: " + fmtInt(len(state.Models))
	}
	if state.Words > 0 {
		line += " | Words: " + fmtInt(state.Words)
	}
	if elapsed != "" {
		line += " | Elapsed: " + elapsed
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the status counts line.
func renderSummary(state State, noColor bool) string {
	counts := state.Counts
	parts := []string{
		stylize("Queued: "+fmtInt(counts.Queued), noColor, lipgloss.Color("242")),
		stylize("Running: "+fmtInt(counts.Running), noColor, lipgloss.Color("242")),
		stylize("Done: "+fmtInt(counts.Done), noColor, lipgloss.Color("242")),
	}
	if state.Phase == runner.PhaseJudge {
		parts = append(parts,
			stylizeStatus("Correct: "+fmtInt(counts.Correct), runner.ItemCorrect, noColor),
			stylizeStatus("Incorrect: "+fmtInt(counts.Incorrect), runner.ItemIncorrect, noColor),
		)
	} else {
		parts = append(parts,
			stylizeStatus("Saved: "+fmtInt(counts.Saved), runner.ItemSaved, noColor),
			stylizeStatus("Empty: "+fmtInt(counts.Empty), runner.ItemEmpty, noColor),
		)
	}
	parts = append(parts,
		stylizeStatus("Skipped: "+fmtInt(counts.Skipped), runner.ItemSkipped, noColor),
		stylizeStatus("Error: "+fmtInt(counts.Errors), runner.ItemError, noColor),
	)
	return strings.Join(parts, " ")
}

// renderPhaseLine renders the current phase line.
func renderPhaseLine(state State, noColor bool) string {
	if state.Phase == "" {
		return ""
	}
	line := "Phase " + string(state.Phase) + " | " + state.Model
	if position := modelPosition(state); position > 0 {
		line += " (" + fmtInt(position) + "/" + fmtInt(len(state.Models)) + ")"
	}
	return stylize(line, noColor, lipgloss.Color("240"))
}

// modelPosition returns the 1-based position of the current model.
func modelPosition(state State) int {
	for i, model := range state.Models {
		if model == state.Model {
			return i + 1
		}
	}
	return 0
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

// stylizeStatus applies status coloring when enabled.
func stylizeStatus(text string, status runner.ItemEventType, noColor bool) string {
	if noColor {
		return text
	}
	return statusStyle(status).Render(text)
}
