package config

import (
	"fmt"
	"os"
	"strings"

	"lexeval/internal/spec"
)

// validateSuite checks that every suite file is configured and present.
func validateSuite(suite spec.SuiteConfig, baseDir string, add issueAdder) {
	validateFile("suite.vocabulary", suite.Vocabulary, baseDir, add)
	validateFile("suite.prompts", suite.Prompts, baseDir, add)
	validateFile("suite.models", suite.Models, baseDir, add)
}

func validateFile(field, path, baseDir string, add issueAdder) {
	if strings.TrimSpace(path) == "" {
		add(field, "is required")
		return
	}
	info, err := os.Stat(ResolvePath(baseDir, path))
	if err != nil {
		add(field, fmt.Sprintf("file not found at %q", path))
		return
	}
	if info.IsDir() {
		add(field, fmt.Sprintf("path %q is a directory", path))
	}
}
