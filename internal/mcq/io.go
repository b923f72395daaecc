package mcq

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"lexeval/internal/suite"
)

// LoadDictionary reads a JSON list of {word, definition} objects.
func LoadDictionary(path string) ([]DictionaryEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	var entries []DictionaryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse dictionary: %w", err)
	}
	return entries, nil
}

// LoadExisting reads a vocabulary file to preserve. A missing file yields
// no entries.
func LoadExisting(path string) ([]suite.Entry, error) {
	if path == "" {
		return nil, nil
	}
	entries, err := suite.LoadVocabulary(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return entries, nil
}

// Write saves entries as indented UTF-8 JSON.
func Write(path string, entries []suite.Entry) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("encode vocabulary: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create vocabulary dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write vocabulary: %w", err)
	}
	return nil
}
