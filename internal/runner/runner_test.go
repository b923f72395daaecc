package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lexeval/internal/report"
	"lexeval/internal/store"
	"lexeval/internal/suite"
	"lexeval/internal/testutil"
)

func TestGenerateStoresResponsesAndResumes(t *testing.T) {
	s := store.New(t.TempDir())
	candidate := &fakeCandidate{}
	observer := &recordingObserver{}
	deps := fixedDeps(s, candidate, nil, observer)
	ctx := testutil.Context(t, 0)

	stats, err := Generate(ctx, testSuite(), deps, Options{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if candidate.count() != 8 {
		t.Fatalf("expected 8 completions, got %d", candidate.count())
	}
	want := []PhaseStats{
		{Phase: PhaseGenerate, Model: "llama3", Items: 4, Completed: 4},
		{Phase: PhaseGenerate, Model: "qwen2", Items: 4, Completed: 4},
	}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
	record, err := s.Load("qwen2", "perro")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	wantRecord := store.Record{
		Word:              "perro",
		CorrectDefinition: "Mamífero cánido",
		ModelResponseA:    "respuesta para Define perro",
		ModelResponseB:    "respuesta para Usa perro",
	}
	if diff := cmp.Diff(wantRecord, record); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}

	again, err := Generate(ctx, testSuite(), deps, Options{})
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if candidate.count() != 8 {
		t.Fatalf("resume re-queried answered items: %d calls", candidate.count())
	}
	for _, item := range again {
		if item.Skipped != 4 || item.Completed != 0 {
			t.Fatalf("expected all items skipped on resume, got %+v", item)
		}
	}
}

func TestGenerateFillsOnlyMissingFields(t *testing.T) {
	s := store.New(t.TempDir())
	if _, err := s.SaveResponse("llama3", "gato", "Mamífero felino", store.Fields{ModelResponseA: "previa"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	candidate := &fakeCandidate{}
	suiteOneModel := testSuite()
	suiteOneModel.Models = []string{"llama3"}

	if _, err := Generate(testutil.Context(t, 0), suiteOneModel, fixedDeps(s, candidate, nil, nil), Options{}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, call := range candidate.calls {
		if call == "llama3|Define gato" {
			t.Fatalf("answered variant was queried again")
		}
	}
	record, err := s.Load("llama3", "gato")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if record.ModelResponseA != "previa" || record.ModelResponseB != "respuesta para Usa gato" {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestGenerateEmptyCompletionIsRetriedLater(t *testing.T) {
	s := store.New(t.TempDir())
	empty := true
	candidate := &fakeCandidate{reply: func(model, prompt string) (string, error) {
		if empty && strings.HasPrefix(prompt, "Usa") {
			return "   ", nil
		}
		return "ok", nil
	}}
	single := testSuite()
	single.Models = []string{"llama3"}
	ctx := testutil.Context(t, 0)

	stats, err := Generate(ctx, single, fixedDeps(s, candidate, nil, nil), Options{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if stats[0].Empty != 2 || stats[0].Completed != 2 {
		t.Fatalf("unexpected stats: %+v", stats[0])
	}
	record, _ := s.Load("llama3", "gato")
	if record.ModelResponseB != "" {
		t.Fatalf("empty completion was persisted: %+v", record)
	}

	empty = false
	if _, err := Generate(ctx, single, fixedDeps(s, candidate, nil, nil), Options{}); err != nil {
		t.Fatalf("second generate: %v", err)
	}
	record, _ = s.Load("llama3", "gato")
	if record.ModelResponseB != "ok" {
		t.Fatalf("expected retry to fill variant b: %+v", record)
	}
}

func TestGenerateCountsErrorsAndContinues(t *testing.T) {
	s := store.New(t.TempDir())
	candidate := &fakeCandidate{reply: func(model, prompt string) (string, error) {
		if strings.HasSuffix(prompt, "gato") {
			return "", errors.New("model offline")
		}
		return "ok", nil
	}}
	single := testSuite()
	single.Models = []string{"llama3"}
	observer := &recordingObserver{}

	stats, err := Generate(testutil.Context(t, 0), single, fixedDeps(s, candidate, nil, observer), Options{})
	if err != nil {
		t.Fatalf("generate should not fail on model errors: %v", err)
	}
	if stats[0].Errors != 2 || stats[0].Completed != 2 {
		t.Fatalf("unexpected stats: %+v", stats[0])
	}
	if record, _ := s.Load("llama3", "gato"); !record.Empty() {
		t.Fatalf("failed word should have no record: %+v", record)
	}
	found := false
	for _, event := range observer.events {
		if event.Type == ItemError && event.Word == "gato" && event.Error == "model offline" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected error event for gato")
	}
}

func TestGenerateConcurrentWorkers(t *testing.T) {
	s := store.New(t.TempDir())
	candidate := &fakeCandidate{}
	big := testSuite()
	big.Vocabulary = nil
	for _, word := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		big.Vocabulary = append(big.Vocabulary, suite.Entry{Word: word, Answer: "def " + word})
	}
	var verbose bytes.Buffer

	stats, err := Generate(testutil.Context(t, 0), big, fixedDeps(s, candidate, nil, nil), Options{
		Concurrency:   4,
		Verbose:       true,
		VerboseWriter: &verbose,
		NoColor:       true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, item := range stats {
		if item.Completed != 16 {
			t.Fatalf("unexpected stats: %+v", item)
		}
	}
	records, err := s.List("qwen2")
	if err != nil || len(records) != 8 {
		t.Fatalf("expected 8 records, got %d (%v)", len(records), err)
	}
	if !strings.Contains(verbose.String(), "[verbose] generate model=llama3 words=8 workers=4") {
		t.Fatalf("missing verbose phase line:\n%s", verbose.String())
	}
}

func TestGenerateRequiresDependencies(t *testing.T) {
	if _, err := Generate(testutil.Context(t, 0), testSuite(), Dependencies{Store: store.New(t.TempDir())}, Options{}); err == nil {
		t.Fatalf("expected missing candidate error")
	}
}

func TestJudgeScoresOnlyUnjudgedResponses(t *testing.T) {
	s := store.New(t.TempDir())
	single := testSuite()
	single.Models = []string{"llama3"}
	ctx := testutil.Context(t, 0)
	if _, err := Generate(ctx, single, fixedDeps(s, &fakeCandidate{}, nil, nil), Options{}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := s.UpdateJudgment("llama3", "perro", "correct", ""); err != nil {
		t.Fatalf("seed judgment: %v", err)
	}

	stats, err := Judge(ctx, single, fixedDeps(s, nil, echoJudge(t), nil), Options{})
	if err != nil {
		t.Fatalf("judge: %v", err)
	}
	want := PhaseStats{Phase: PhaseJudge, Model: "llama3", Items: 4, Completed: 3, Skipped: 1, Correct: 1, Incorrect: 2}
	if diff := cmp.Diff(want, stats[0]); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
	gato, _ := s.Load("llama3", "gato")
	perro, _ := s.Load("llama3", "perro")
	if gato.JudgmentA != "correct" || gato.JudgmentB != "incorrect" {
		t.Fatalf("unexpected gato verdicts: %+v", gato)
	}
	if perro.JudgmentA != "correct" || perro.JudgmentB != "incorrect" {
		t.Fatalf("pre-existing verdict overwritten or b missing: %+v", perro)
	}
	if gato.ModelResponseA == "" || gato.CorrectDefinition != "Mamífero felino" {
		t.Fatalf("judgment dropped fields: %+v", gato)
	}
}

func TestJudgeSkipsMissingResponses(t *testing.T) {
	s := store.New(t.TempDir())
	single := testSuite()
	single.Models = []string{"llama3"}
	stats, err := Judge(testutil.Context(t, 0), single, fixedDeps(s, nil, echoJudge(t), nil), Options{})
	if err != nil {
		t.Fatalf("judge: %v", err)
	}
	if stats[0].Skipped != 4 || stats[0].Completed != 0 {
		t.Fatalf("unexpected stats: %+v", stats[0])
	}
	if records, _ := s.List("llama3"); len(records) != 0 {
		t.Fatalf("judge created records without responses: %+v", records)
	}
}

type recordingIndexer struct {
	runID   string
	summary report.Summary
}

func (r *recordingIndexer) Ingest(ctx context.Context, runID string, models []string, summary report.Summary) error {
	r.runID = runID
	r.summary = summary
	return nil
}

func TestRunWritesSummaryAndReport(t *testing.T) {
	dir := t.TempDir()
	s := store.New(filepath.Join(dir, "output"))
	observer := &recordingObserver{}
	indexer := &recordingIndexer{}
	deps := fixedDeps(s, &fakeCandidate{}, echoJudge(t), observer)
	deps.Indexer = indexer
	summaryPath := filepath.Join(dir, "summary.json")
	reportPath := filepath.Join(dir, "report.html")

	result, err := Run(testutil.Context(t, 0), testSuite(), deps, RunParams{SummaryPath: summaryPath, ReportPath: reportPath})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := report.Summary{
		"llama3": {PromptAAccuracy: 50, PromptACorrect: 1, Total: 2, JudgedA: 2, JudgedB: 2},
		"qwen2":  {PromptAAccuracy: 50, PromptACorrect: 1, Total: 2, JudgedA: 2, JudgedB: 2},
	}
	if diff := cmp.Diff(want, result.Summary); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
	loaded, err := report.LoadSummary(summaryPath)
	if err != nil {
		t.Fatalf("load summary: %v", err)
	}
	if diff := cmp.Diff(want, loaded); diff != "" {
		t.Fatalf("written summary mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(reportPath); err != nil {
		t.Fatalf("expected report: %v", err)
	}
	if result.RunID != "run-1" || indexer.runID != "run-1" || len(indexer.summary) != 2 {
		t.Fatalf("unexpected run wiring: %+v %+v", result, indexer)
	}
	if len(observer.runIDs) != 1 || len(observer.finished) != 1 || len(observer.phases) != 4 {
		t.Fatalf("unexpected observer calls: runs=%d finished=%d phases=%d", len(observer.runIDs), len(observer.finished), len(observer.phases))
	}
}

func TestRunCancelledStillNotifiesObserver(t *testing.T) {
	ctx, cancel := context.WithCancel(testutil.Context(t, 0))
	candidate := &fakeCandidate{reply: func(model, prompt string) (string, error) {
		cancel()
		return "", context.Canceled
	}}
	observer := &recordingObserver{}
	_, err := Run(ctx, testSuite(), fixedDeps(store.New(t.TempDir()), candidate, echoJudge(t), observer), RunParams{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if len(observer.finished) != 1 {
		t.Fatalf("expected OnRunEnd after cancellation")
	}
}

func TestProgressObserverLines(t *testing.T) {
	var buf bytes.Buffer
	observer := NewProgressObserver(&buf, true)
	observer.OnRunStart("run-1", []string{"llama3"}, 2)
	observer.OnPhaseEnd(PhaseStats{Phase: PhaseGenerate, Model: "llama3", Completed: 3, Skipped: 1})
	observer.OnPhaseEnd(PhaseStats{Phase: PhaseJudge, Model: "llama3", Completed: 4, Correct: 3, Incorrect: 1})
	observer.OnRunEnd(Result{SummaryPath: "summary.json"})
	want := "Run run-1: 1 models x 2 words\n" +
		"generate llama3: 3 new responses, 1 skipped, 0 empty, 0 errors\n" +
		"judge llama3: 4 judged (3 correct, 1 incorrect), 0 skipped, 0 errors\n" +
		"Summary: summary.json\n"
	if buf.String() != want {
		t.Fatalf("unexpected progress output:\n%s", buf.String())
	}
}
