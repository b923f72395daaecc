package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lexeval/internal/testutil"
)

const judgeKeyEnv = "LEXEVAL_TEST_JUDGE_KEY"

const testVocabulary = `[
  {"word": "gato", "answer": "Mamífero felino doméstico."},
  {"word": "casa", "answer": "Edificio para habitar."}
]
`

const testPrompts = `{
  "prompt_a": "Define la palabra \"{word}\".",
  "prompt_b": "Usa la palabra \"{word}\" en dos frases."
}
`

// projectOptions tunes the config written by writeProject.
type projectOptions struct {
	baseURL  string
	models   []string
	variants string
	index    string
	limiter  string
}

// writeProject lays out a project with a config and a two-word suite and
// returns the config path.
func writeProject(t *testing.T, opts projectOptions) string {
	t.Helper()
	root := t.TempDir()
	if len(opts.models) == 0 {
		opts.models = []string{"llama3"}
	}
	if opts.variants == "" {
		opts.variants = `    a: {mode: model, rubric: definition}
    b: {mode: model, rubric: usage}
`
	}
	config := `version: 1
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
  base_url: "` + opts.baseURL + `"
judge:
  provider: openai
  model: judge-model
  base_url: "` + opts.baseURL + `"
  api_key_env: ` + judgeKeyEnv + `
  variants:
` + opts.variants
	if opts.index != "" {
		config += "index:\n  path: " + opts.index + "\n"
	}
	config += opts.limiter
	files := map[string]string{
		filepath.Join(".lexeval", "config.yml"):   config,
		filepath.Join("suite", "vocabulary.json"): testVocabulary,
		filepath.Join("suite", "prompts.json"):    testPrompts,
		filepath.Join("suite", "models.txt"):      strings.Join(opts.models, "\n") + "\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	t.Setenv(judgeKeyEnv, "judge-secret")
	return filepath.Join(root, ".lexeval", "config.yml")
}

// projectRoot returns the root directory of a config written by writeProject.
func projectRoot(configPath string) string {
	return filepath.Dir(filepath.Dir(configPath))
}

// fakeModels answers candidate prompts with fixed text and judges any
// definition of "gato" as correct.
func fakeModels(model, prompt string) testutil.CompletionReply {
	if model == "judge-model" {
		if strings.Contains(prompt, "gato") {
			return testutil.Reply("correct")
		}
		return testutil.Reply("incorrect")
	}
	return testutil.Reply("Respuesta de " + model)
}

// runCLI executes the command line and captures its output.
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}
