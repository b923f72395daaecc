package suite

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadModels reads active model names, one per line. Blank lines and lines
// starting with # are skipped; duplicates keep their first position.
func LoadModels(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read models list: %w", err)
	}
	defer file.Close()

	var models []string
	seen := map[string]struct{}{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		models = append(models, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read models list: %w", err)
	}
	return models, nil
}

// LoadPrompts reads prompt templates from a JSON or YAML file.
func LoadPrompts(path string) (Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Prompts{}, fmt.Errorf("read prompts: %w", err)
	}
	var prompts Prompts
	if err := decode(data, path, &prompts); err != nil {
		return Prompts{}, fmt.Errorf("prompts: %w", err)
	}
	return prompts, nil
}

// LoadVocabulary reads vocabulary entries from a JSON or YAML file.
func LoadVocabulary(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	var entries []Entry
	if err := decode(data, path, &entries); err != nil {
		return nil, fmt.Errorf("vocabulary: %w", err)
	}
	return entries, nil
}

// Load reads and validates all suite files.
func Load(paths Paths) (Suite, error) {
	models, err := LoadModels(paths.Models)
	if err != nil {
		return Suite{}, err
	}
	prompts, err := LoadPrompts(paths.Prompts)
	if err != nil {
		return Suite{}, err
	}
	vocabulary, err := LoadVocabulary(paths.Vocabulary)
	if err != nil {
		return Suite{}, err
	}
	return Normalize(Suite{Models: models, Prompts: prompts, Vocabulary: vocabulary})
}

func decode(data []byte, path string, out any) error {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return decodeJSON(data, out)
	}
	return decodeYAML(data, out)
}

func decodeJSON(data []byte, out any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fmt.Errorf("parse json: multiple documents are not supported")
		}
		return fmt.Errorf("parse json: %w", err)
	}
	return nil
}

func decodeYAML(data []byte, out any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}
