package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lexeval/internal/suite"
)

func TestLoadMissingRecordIsEmpty(t *testing.T) {
	s := New(t.TempDir())
	record, err := s.Load("llama3", "gato")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !record.Empty() {
		t.Fatalf("expected empty record, got %+v", record)
	}
}

func TestSaveResponseCreatesLayout(t *testing.T) {
	root := t.TempDir()
	s := New(root)
	if _, err := s.SaveResponse("llama3", "gato", "Mamífero felino.", Fields{ModelResponseA: "Un felino <doméstico>"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "llama3", "gato.json"))
	if err != nil {
		t.Fatalf("read record: %v", err)
	}
	want := `{
  "word": "gato",
  "correct_definition": "Mamífero felino.",
  "model_response_a": "Un felino <doméstico>"
}`
	if string(data) != want {
		t.Fatalf("unexpected file contents:\n%s", data)
	}
}

func TestSaveResponseMergesWithoutClobbering(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.SaveResponse("llama3", "gato", "felino", Fields{ModelResponseA: "respuesta a"}); err != nil {
		t.Fatalf("save a: %v", err)
	}
	if _, err := s.SaveResponse("llama3", "gato", "felino", Fields{ModelResponseB: "respuesta b"}); err != nil {
		t.Fatalf("save b: %v", err)
	}
	if _, err := s.SaveResponse("llama3", "gato", "felino", Fields{ModelResponseA: ""}); err != nil {
		t.Fatalf("save empty: %v", err)
	}

	record, err := s.Load("llama3", "gato")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Record{
		Word:              "gato",
		CorrectDefinition: "felino",
		ModelResponseA:    "respuesta a",
		ModelResponseB:    "respuesta b",
	}
	if diff := cmp.Diff(want, record); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateJudgmentPreservesResponses(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.SaveResponse("llama3", "gato", "felino", Fields{ModelResponseA: "a", ModelResponseB: "b"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := s.UpdateJudgment("llama3", "gato", JudgmentCorrect, ""); err != nil {
		t.Fatalf("judge a: %v", err)
	}
	record, err := s.UpdateJudgment("llama3", "gato", "", JudgmentIncorrect)
	if err != nil {
		t.Fatalf("judge b: %v", err)
	}
	want := Record{
		Word:              "gato",
		CorrectDefinition: "felino",
		ModelResponseA:    "a",
		ModelResponseB:    "b",
		JudgmentA:         JudgmentCorrect,
		JudgmentB:         JudgmentIncorrect,
	}
	if diff := cmp.Diff(want, record); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	if !record.IsCorrect(suite.VariantA) || record.IsCorrect(suite.VariantB) {
		t.Fatalf("unexpected correctness for %+v", record)
	}
}

func TestUpdateJudgmentOnMissingRecord(t *testing.T) {
	s := New(t.TempDir())
	record, err := s.UpdateJudgment("llama3", "gato", JudgmentIncorrect, "")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if record.Word != "gato" || record.JudgmentA != JudgmentIncorrect {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestModelNamesStayInOneSegment(t *testing.T) {
	root := t.TempDir()
	s := New(root)
	model := "library/llama3:8b"
	if _, err := s.SaveResponse(model, "ñandú", "ave", Fields{ModelResponseA: "ave"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "library%2Fllama3:8b", "ñandú.json")); err != nil {
		t.Fatalf("expected escaped model dir: %v", err)
	}
	records, err := s.List(model)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].Word != "ñandú" {
		t.Fatalf("expected the record under the escaped model dir, got %+v", records)
	}
}

func TestEscapeSegmentRoundTrip(t *testing.T) {
	for _, value := range []string{"", ".", "..", "a/b", `a\b`, "50%", "%2F", "ñandú"} {
		escaped := escapeSegment(value)
		if strings.ContainsAny(escaped, `/\`) {
			t.Fatalf("escaped %q still contains a separator: %q", value, escaped)
		}
		if got := unescapeSegment(escaped); got != value {
			t.Fatalf("round trip %q: got %q via %q", value, got, escaped)
		}
	}
}

func TestListSortsAndSkipsForeignFiles(t *testing.T) {
	root := t.TempDir()
	s := New(root)
	for _, word := range []string{"perro", "gato"} {
		if _, err := s.SaveResponse("llama3", word, "def", Fields{}); err != nil {
			t.Fatalf("save %s: %v", word, err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "llama3", "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}

	records, err := s.List("llama3")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 || records[0].Word != "gato" || records[1].Word != "perro" {
		t.Fatalf("unexpected records: %+v", records)
	}

	missing, err := s.List("unknown")
	if err != nil || missing != nil {
		t.Fatalf("expected nil list for unknown model, got %v %v", missing, err)
	}
}

func TestLoadCorruptRecord(t *testing.T) {
	root := t.TempDir()
	s := New(root)
	if err := os.MkdirAll(filepath.Join(root, "llama3"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(s.Path("llama3", "gato"), []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := s.Load("llama3", "gato"); !errors.Is(err, ErrCorruptRecord) {
		t.Fatalf("expected corrupt record error, got %v", err)
	}
}

func TestConcurrentMergesKeepEveryField(t *testing.T) {
	s := New(t.TempDir())
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if _, err := s.SaveResponse("llama3", "gato", "felino", Fields{ModelResponseA: "a"}); err != nil {
			t.Errorf("save a: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		if _, err := s.SaveResponse("llama3", "gato", "felino", Fields{ModelResponseB: "b"}); err != nil {
			t.Errorf("save b: %v", err)
		}
	}()
	wg.Wait()

	record, err := s.Load("llama3", "gato")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if record.ModelResponseA != "a" || record.ModelResponseB != "b" {
		t.Fatalf("lost update: %+v", record)
	}
	entries, err := os.ReadDir(s.ModelDir("llama3"))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the record file, got %d entries", len(entries))
	}
}

func TestResponseFields(t *testing.T) {
	if got := ResponseFields(suite.VariantB, "x"); got != (Fields{ModelResponseB: "x"}) {
		t.Fatalf("unexpected fields: %+v", got)
	}
	if got := ResponseFields(suite.Variant("z"), "x"); got != (Fields{}) {
		t.Fatalf("unexpected fields: %+v", got)
	}
}
