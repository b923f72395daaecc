package report

import (
	"fmt"
	"sort"
)

// formatAccuracy renders a percentage with one decimal.
func formatAccuracy(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// orderedModels returns models in the given order, followed by any other
// summary keys sorted by name.
func orderedModels(summary Summary, models []string) []string {
	ordered := make([]string, 0, len(summary))
	seen := map[string]struct{}{}
	for _, model := range models {
		if _, ok := summary[model]; !ok {
			continue
		}
		if _, dup := seen[model]; dup {
			continue
		}
		seen[model] = struct{}{}
		ordered = append(ordered, model)
	}
	var rest []string
	for model := range summary {
		if _, ok := seen[model]; !ok {
			rest = append(rest, model)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}
