package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrCorruptRecord is returned when a record file cannot be decoded.
var ErrCorruptRecord = errors.New("corrupt record")

// Store persists one JSON file per (model, word) under a root directory.
type Store struct {
	root  string
	locks sync.Map
}

// New returns a store rooted at dir. The directory is created lazily.
func New(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the responses directory.
func (s *Store) Root() string {
	return s.root
}

// ModelDir returns the directory holding records for model.
func (s *Store) ModelDir(model string) string {
	return filepath.Join(s.root, escapeSegment(model))
}

// Path returns the record file path for the pair.
func (s *Store) Path(model, word string) string {
	return filepath.Join(s.ModelDir(model), escapeSegment(word)+recordExt)
}

// Load returns the stored record, or an empty record when none exists.
func (s *Store) Load(model, word string) (Record, error) {
	return s.read(s.Path(model, word))
}

// SaveResponse merges fields into the stored record. Word and definition are
// always set; other fields are only overwritten by non-empty values.
func (s *Store) SaveResponse(model, word, definition string, fields Fields) (Record, error) {
	path := s.Path(model, word)
	unlock := s.lock(path)
	defer unlock()

	record, err := s.read(path)
	if err != nil {
		return Record{}, err
	}
	record.Word = word
	record.CorrectDefinition = definition
	record.merge(fields)
	if err := writeRecord(path, record); err != nil {
		return Record{}, fmt.Errorf("save %s/%s: %w", model, word, err)
	}
	return record, nil
}

// UpdateJudgment stores non-empty verdicts and preserves every other field.
func (s *Store) UpdateJudgment(model, word, judgmentA, judgmentB string) (Record, error) {
	path := s.Path(model, word)
	unlock := s.lock(path)
	defer unlock()

	record, err := s.read(path)
	if err != nil {
		return Record{}, err
	}
	if record.Word == "" {
		record.Word = word
	}
	record.merge(Fields{JudgmentA: judgmentA, JudgmentB: judgmentB})
	if err := writeRecord(path, record); err != nil {
		return Record{}, fmt.Errorf("update judgment %s/%s: %w", model, word, err)
	}
	return record, nil
}

// List returns every record stored for model, sorted by word.
func (s *Store) List(model string) ([]Record, error) {
	dir := s.ModelDir(model)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", model, err)
	}
	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, recordExt) {
			continue
		}
		record, err := s.read(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if record.Word == "" {
			record.Word = unescapeSegment(strings.TrimSuffix(name, recordExt))
		}
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Word < records[j].Word
	})
	return records, nil
}

func (s *Store) lock(path string) func() {
	value, _ := s.locks.LoadOrStore(path, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *Store) read(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, nil
		}
		return Record{}, fmt.Errorf("read record: %w", err)
	}
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return Record{}, fmt.Errorf("%w: %s: %v", ErrCorruptRecord, path, err)
	}
	return record, nil
}

func encodeRecord(record Record) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(record); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// writeRecord replaces path atomically via a synced temp file and rename.
func writeRecord(path string, record Record) error {
	payload, err := encodeRecord(record)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	file, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := file.Name()
	_, writeErr := file.Write(payload)
	syncErr := file.Sync()
	closeErr := file.Close()
	if writeErr != nil {
		_ = os.Remove(tmpPath)
		return writeErr
	}
	if syncErr != nil {
		_ = os.Remove(tmpPath)
		return syncErr
	}
	if closeErr != nil {
		_ = os.Remove(tmpPath)
		return closeErr
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
