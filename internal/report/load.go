package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteSummary writes summary as indented UTF-8 JSON keyed by model. Keys
// follow models, then any model missing from it in sorted order.
func WriteSummary(path string, summary Summary, models []string) error {
	if path == "" {
		return fmt.Errorf("summary path is required")
	}
	payload, err := encodeJSON(orderedSummary{summary: summary, models: models}, "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	return writeFile(path, payload)
}

// orderedSummary marshals a Summary with its keys in model-list order.
type orderedSummary struct {
	summary Summary
	models  []string
}

func (o orderedSummary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, model := range orderedModels(o.summary, o.models) {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeJSON(model, "")
		if err != nil {
			return nil, err
		}
		value, err := encodeJSON(o.summary[model], "")
		if err != nil {
			return nil, err
		}
		buf.Write(bytes.TrimSpace(key))
		buf.WriteByte(':')
		buf.Write(bytes.TrimSpace(value))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeJSON encodes v without HTML escaping so model names stay readable.
func encodeJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if indent != "" {
		encoder.SetIndent("", indent)
	}
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFile(path string, payload []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s dir: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// LoadSummary reads a summary written by WriteSummary.
func LoadSummary(path string) (Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("parse summary: %w", err)
	}
	return summary, nil
}
