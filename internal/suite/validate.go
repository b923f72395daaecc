package suite

import (
	"fmt"
	"strings"

	"lexeval/internal/answer"
)

// Issue captures a validation problem in the suite files.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("suite validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// Normalize trims whitespace and validates a loaded suite.
func Normalize(s Suite) (Suite, error) {
	collector := &issueCollector{}

	if len(s.Models) == 0 {
		collector.add("models", "must include at least one active model")
	}

	for _, variant := range Variants {
		field := "prompt_" + string(variant)
		template := strings.TrimSpace(s.Prompts.Template(variant))
		if template == "" {
			collector.add(field, "is required")
		} else if !strings.Contains(template, WordPlaceholder) {
			collector.add(field, fmt.Sprintf("must contain %s", WordPlaceholder))
		}
	}

	if len(s.Vocabulary) == 0 {
		collector.add("vocabulary", "must include at least one entry")
	}
	seen := map[string]struct{}{}
	for i, entry := range s.Vocabulary {
		prefix := fmt.Sprintf("vocabulary[%d]", i)
		entry.Word = strings.TrimSpace(entry.Word)
		entry.Answer = strings.TrimSpace(entry.Answer)
		entry.Question = strings.TrimSpace(entry.Question)

		if entry.Word == "" {
			collector.add(prefix+".word", "is required")
		} else if _, exists := seen[entry.Word]; exists {
			collector.add(prefix+".word", fmt.Sprintf("duplicate word %q", entry.Word))
		} else {
			seen[entry.Word] = struct{}{}
		}
		if entry.Answer == "" {
			collector.add(prefix+".answer", "is required")
		}

		if entry.Choices != nil {
			entry.Choices = normalizeStringSlice(entry.Choices)
			validateChoices(prefix, entry, collector)
		}
		s.Vocabulary[i] = entry
	}

	if err := collector.result(); err != nil {
		return Suite{}, err
	}
	return s, nil
}

func validateChoices(prefix string, entry Entry, collector *issueCollector) {
	if len(entry.Choices) < 2 {
		collector.add(prefix+".choices", "must include at least two entries")
		return
	}
	if len(entry.Choices) > 26 {
		collector.add(prefix+".choices", "must include at most 26 entries")
		return
	}
	found := false
	for choiceIndex, choice := range entry.Choices {
		if choice == "" {
			collector.add(fmt.Sprintf("%s.choices[%d]", prefix, choiceIndex), "is required")
			continue
		}
		if entry.Answer != "" && answer.Equal(choice, entry.Answer) {
			found = true
		}
	}
	if entry.Answer != "" && !found {
		collector.add(prefix+".answer", fmt.Sprintf("not among choices: %q", entry.Answer))
	}
}

func normalizeStringSlice(values []string) []string {
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		normalized = append(normalized, strings.TrimSpace(value))
	}
	return normalized
}
