package config

import "strings"

// Issue is one problem found in a config field.
type Issue struct {
	Field   string
	Message string
}

func (issue Issue) String() string {
	return issue.Field + ": " + issue.Message
}

// ValidationError lists every issue found in a config, one per line.
type ValidationError struct {
	Issues []Issue
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "invalid config"
	}
	lines := make([]string, len(err.Issues))
	for i, issue := range err.Issues {
		lines[i] = issue.String()
	}
	return strings.Join(lines, "\n")
}

// issueAdder records an issue; validators share one collector through it.
type issueAdder func(field, message string)

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}
