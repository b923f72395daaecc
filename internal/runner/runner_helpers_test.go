package runner

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"lexeval/internal/judge"
	"lexeval/internal/provider"
	"lexeval/internal/store"
	"lexeval/internal/suite"
)

func testSuite() suite.Suite {
	return suite.Suite{
		Models:  []string{"llama3", "qwen2"},
		Prompts: suite.Prompts{PromptA: "Define {word}", PromptB: "Usa {word}"},
		Vocabulary: []suite.Entry{
			{Word: "gato", Answer: "Mamífero felino"},
			{Word: "perro", Answer: "Mamífero cánido"},
		},
	}
}

type fakeCandidate struct {
	mu    sync.Mutex
	calls []string
	reply func(model, prompt string) (string, error)
}

func (f *fakeCandidate) Complete(ctx context.Context, model, prompt string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, model+"|"+prompt)
	f.mu.Unlock()
	if f.reply == nil {
		return "respuesta para " + prompt, nil
	}
	return f.reply(model, prompt)
}

func (f *fakeCandidate) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// echoJudge marks a response correct when it mentions the word's reference.
func echoJudge(t *testing.T) *judge.Judge {
	t.Helper()
	completer := provider.CompleterFunc(func(ctx context.Context, model, prompt string) (string, error) {
		if strings.Contains(prompt, "Definición del modelo: respuesta para Define gato") {
			return "correct", nil
		}
		return "incorrect", nil
	})
	j, err := judge.New(judge.Options{Completer: completer, Model: "gpt-5"})
	if err != nil {
		t.Fatalf("judge: %v", err)
	}
	return j
}

type recordingObserver struct {
	mu       sync.Mutex
	runIDs   []string
	phases   []PhaseStats
	events   []ItemEvent
	finished []Result
}

func (r *recordingObserver) OnRunStart(runID string, models []string, words int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runIDs = append(r.runIDs, runID)
}

func (r *recordingObserver) OnPhaseStart(Phase, string, int) {}

func (r *recordingObserver) OnItemEvent(event ItemEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingObserver) OnPhaseEnd(stats PhaseStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phases = append(r.phases, stats)
}

func (r *recordingObserver) OnRunEnd(result Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = append(r.finished, result)
}

func fixedDeps(s *store.Store, candidate provider.Completer, j *judge.Judge, observer RunObserver) Dependencies {
	return Dependencies{
		Store:     s,
		Candidate: candidate,
		Judge:     j,
		Observer:  observer,
		RunID:     func() (string, error) { return "run-1", nil },
		Now:       func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) },
	}
}
