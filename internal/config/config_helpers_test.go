package config

import (
	"os"
	"path/filepath"
	"testing"

	"lexeval/internal/spec"
)

// writeSuiteFixture writes empty suite files under a temp root.
func writeSuiteFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	suiteDir := filepath.Join(root, "suite")
	if err := os.MkdirAll(suiteDir, 0o755); err != nil {
		t.Fatalf("mkdir suite: %v", err)
	}
	for _, name := range []string{"vocabulary.json", "prompts.json", "models_list.txt"} {
		if err := os.WriteFile(filepath.Join(suiteDir, name), []byte("{}"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return root
}

func validConfig() spec.Config {
	cfg := spec.Config{
		Version: 1,
		Suite: spec.SuiteConfig{
			Vocabulary: "suite/vocabulary.json",
			Prompts:    "suite/prompts.json",
			Models:     "suite/models_list.txt",
		},
	}
	Normalize(&cfg)
	return cfg
}
