//go:build cucumber
// +build cucumber

package cucumber

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lexeval/internal/testutil"
)

const judgeKeyEnv = "LEXEVAL_FEATURE_JUDGE_KEY"

// aProjectWithModels creates a project backed by a fake completion server
// and changes into it.
func (s *featureState) aProjectWithModels(models string) error {
	dir, err := os.MkdirTemp("", "lexeval-feature-*")
	if err != nil {
		return fmt.Errorf("create temp project: %w", err)
	}
	s.projectDir = dir
	s.configPath = filepath.Join(dir, ".lexeval", "config.yml")
	s.server = testutil.StartCompletionServer(s.t, s.reply)

	names := strings.Split(models, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	files := map[string]string{
		filepath.Join("suite", "vocabulary.json"): vocabularyJSON(),
		filepath.Join("suite", "prompts.json"):    promptsJSON(),
		filepath.Join("suite", "models.txt"):      strings.Join(names, "\n") + "\n",
	}
	for rel, content := range files {
		if err := s.writeFile(rel, content); err != nil {
			return err
		}
	}
	if err := s.writeConfig(validConfigYAML(s.server.BaseURL)); err != nil {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working dir: %w", err)
	}
	s.previousWD = wd
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("chdir: %w", err)
	}
	return nil
}

// judgeCredentialsAreAvailable stubs the judge API key for tests.
func (s *featureState) judgeCredentialsAreAvailable() error {
	return s.setEnv(judgeKeyEnv, "test-key")
}

// theConfigIsInvalid replaces the config with an invalid configuration.
func (s *featureState) theConfigIsInvalid() error {
	if s.projectDir == "" {
		if err := s.aProjectWithModels("llama3"); err != nil {
			return err
		}
	}
	return s.writeConfig(invalidConfigYAML())
}

// writeConfig persists configuration content to the project config path.
func (s *featureState) writeConfig(contents string) error {
	if s.configPath == "" {
		return fmt.Errorf("config path is not set")
	}
	if err := os.MkdirAll(filepath.Dir(s.configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(s.configPath, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// writeFile writes a file relative to the project directory.
func (s *featureState) writeFile(rel, contents string) error {
	path := filepath.Join(s.projectDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", rel, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}

// validConfigYAML returns a config pointing both providers at baseURL.
func validConfigYAML(baseURL string) string {
	return `version: 1
suite:
  vocabulary: suite/vocabulary.json
  prompts: suite/prompts.json
  models: suite/models.txt
output:
  responses_dir: output
  summary_path: summary.json
  report_path: report.html
candidate:
  provider: openai
  base_url: "` + baseURL + `"
judge:
  provider: openai
  model: judge-model
  base_url: "` + baseURL + `"
  api_key_env: ` + judgeKeyEnv + `
`
}

// invalidConfigYAML returns a config with an unsupported version.
func invalidConfigYAML() string {
	return `version: 3
suite:
  vocabulary: suite/vocabulary.json
  prompts: suite/prompts.json
  models: suite/models.txt
`
}

func vocabularyJSON() string {
	return `[
  {"word": "gato", "answer": "Mamífero felino doméstico."},
  {"word": "casa", "answer": "Edificio para habitar."}
]
`
}

func promptsJSON() string {
	return `{
  "prompt_a": "Define la palabra \"{word}\".",
  "prompt_b": "Usa la palabra \"{word}\" en dos frases."
}
`
}
