package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1
suite:
  vocabulary: "suite/vocabulary_short.json"
  prompts: "suite/prompts.json"
  models: "suite/models_list.txt"

output:
  responses_dir: "output"
  summary_path: "summary.json"
  report_path: "report.html"

candidate:
  provider: "openai"
  base_url: "http://localhost:11434/v1"
  timeout_seconds: 120
  max_retries: 2

judge:
  provider: "openai"
  model: "gpt-5"
  api_key_env: "OPENAI_API_KEY"
  fuzzy_threshold: 0.85
  variants:
    a:
      mode: model
      rubric: definition
    b:
      mode: model
      rubric: usage

concurrency: 1

# Throttle calls per provider/model. Set mode to "embedded" to enable.
rate_limiter:
  mode: disabled
  limits:
    - provider: "openai"
      model: "gpt-5"
      requests_per_minute: 500
      tokens_per_minute: 200000
      concurrency: 4
`

const defaultModels = `# One model per line. Lines starting with # are skipped.
gemma3:12b
llama3.1:latest
#mistral:latest
`

const defaultPrompts = `{
  "prompt_a": "Define la palabra \"{word}\" en español en una sola frase, sin ejemplos.",
  "prompt_b": "Escribe dos frases en español: la primera debe usar la palabra \"{word}\"; la segunda debe complementar el significado de la primera sin usar la palabra."
}
`

const defaultVocabulary = `[
  {
    "word": "ardilla",
    "answer": "Mamífero roedor de unos 20 cm de largo, de cola larga y poblada, que vive en los bosques."
  },
  {
    "word": "agüista",
    "answer": "Persona que toma aguas medicinales, por lo general en un balneario."
  }
]
`

// scaffoldFile is one file written by Scaffold, relative to the project root.
type scaffoldFile struct {
	path    string
	content string
}

// Scaffold writes a starter config and sample suite under root.
func Scaffold(root string) error {
	if root == "" {
		return fmt.Errorf("project root is required")
	}
	files := []scaffoldFile{
		{path: filepath.Join(ConfigDirName, ConfigFileName), content: defaultConfig},
		{path: filepath.Join("suite", "models_list.txt"), content: defaultModels},
		{path: filepath.Join("suite", "prompts.json"), content: defaultPrompts},
		{path: filepath.Join("suite", "vocabulary_short.json"), content: defaultVocabulary},
	}
	for _, file := range files {
		target := filepath.Join(root, file.path)
		if info, err := os.Stat(target); err == nil {
			if info.IsDir() {
				return fmt.Errorf("path %q is a directory", target)
			}
			return fmt.Errorf("file already exists at %q", target)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("stat %s: %w", file.path, err)
		}
	}
	for _, file := range files {
		target := filepath.Join(root, file.path)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(file.path), err)
		}
		if err := os.WriteFile(target, []byte(file.content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", file.path, err)
		}
	}
	return nil
}
