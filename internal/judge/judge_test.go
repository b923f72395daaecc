package judge

import (
	"context"
	"errors"
	"strings"
	"testing"

	"lexeval/internal/prompt"
	"lexeval/internal/provider"
	"lexeval/internal/store"
	"lexeval/internal/suite"
	"lexeval/internal/testutil"
)

type recordingCompleter struct {
	reply   string
	err     error
	models  []string
	prompts []string
}

func (r *recordingCompleter) Complete(ctx context.Context, model, text string) (string, error) {
	r.models = append(r.models, model)
	r.prompts = append(r.prompts, text)
	return r.reply, r.err
}

func TestNewRequiresCompleterForModelMode(t *testing.T) {
	if _, err := New(Options{Model: "gpt-5"}); err == nil {
		t.Fatalf("expected error without completer")
	}
	if _, err := New(Options{Rules: map[suite.Variant]VariantRule{suite.VariantA: {Mode: ModeExact}}}); err != nil {
		t.Fatalf("exact mode should not need a completer: %v", err)
	}
	if _, err := New(Options{Rules: map[suite.Variant]VariantRule{suite.VariantA: {Mode: "vibes"}}}); err == nil {
		t.Fatalf("expected unknown mode error")
	}
}

func TestModelModeUsesRubricPerVariant(t *testing.T) {
	completer := &recordingCompleter{reply: " Correct \n"}
	j, err := New(Options{Completer: completer, Model: "gpt-5"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	entry := suite.Entry{Word: "gato", Answer: "Mamífero felino."}
	ctx := testutil.Context(t, 0)

	resultA, err := j.Evaluate(ctx, suite.VariantA, entry, "Un felino doméstico")
	if err != nil {
		t.Fatalf("evaluate a: %v", err)
	}
	resultB, err := j.Evaluate(ctx, suite.VariantB, entry, "El gato duerme. Ronronea.")
	if err != nil {
		t.Fatalf("evaluate b: %v", err)
	}
	if resultA.Verdict != store.JudgmentCorrect || resultB.Verdict != store.JudgmentCorrect {
		t.Fatalf("unexpected verdicts: %+v %+v", resultA, resultB)
	}
	wantA, _ := prompt.RenderJudgePrompt(ctx, prompt.RubricDefinition, "gato", "Mamífero felino.", "Un felino doméstico")
	wantB, _ := prompt.RenderJudgePrompt(ctx, prompt.RubricUsage, "gato", "Mamífero felino.", "El gato duerme. Ronronea.")
	if completer.prompts[0] != wantA || completer.prompts[1] != wantB {
		t.Fatalf("unexpected judge prompts:\n%s\n---\n%s", completer.prompts[0], completer.prompts[1])
	}
	if completer.models[0] != "gpt-5" {
		t.Fatalf("unexpected judge model %q", completer.models[0])
	}
}

func TestModelModeEmptyReplyIsIncorrect(t *testing.T) {
	j, err := New(Options{Completer: &recordingCompleter{reply: ""}, Model: "gpt-5"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	result, err := j.Evaluate(testutil.Context(t, 0), suite.VariantA, suite.Entry{Word: "gato", Answer: "felino"}, "felino")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.Verdict != store.JudgmentIncorrect {
		t.Fatalf("expected incorrect, got %+v", result)
	}
}

func TestModelModePropagatesErrors(t *testing.T) {
	j, err := New(Options{Completer: &recordingCompleter{err: provider.ErrDisabled}, Model: "gpt-5"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	_, err = j.Evaluate(testutil.Context(t, 0), suite.VariantA, suite.Entry{Word: "gato", Answer: "felino"}, "felino")
	if !errors.Is(err, provider.ErrDisabled) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
}

func TestExactAndFuzzyModes(t *testing.T) {
	j, err := New(Options{Rules: map[suite.Variant]VariantRule{
		suite.VariantA: {Mode: ModeExact},
		suite.VariantB: {Mode: ModeFuzzy},
	}})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	entry := suite.Entry{Word: "gato", Answer: "Mamífero felino doméstico"}
	ctx := testutil.Context(t, 0)

	cases := []struct {
		variant  suite.Variant
		response string
		want     string
	}{
		{suite.VariantA, "  mamifero FELINO domestico. ", store.JudgmentCorrect},
		{suite.VariantA, "Pienso que...\n<answer>Mamífero felino doméstico</answer>", store.JudgmentCorrect},
		{suite.VariantA, "mamífero felino", store.JudgmentIncorrect},
		{suite.VariantB, "Mamifero felino domestco", store.JudgmentCorrect},
		{suite.VariantB, "Es un mamífero felino doméstico muy común", store.JudgmentCorrect},
		{suite.VariantB, "Herramienta de carpintería", store.JudgmentIncorrect},
	}
	for _, tc := range cases {
		result, err := j.Evaluate(ctx, tc.variant, entry, tc.response)
		if err != nil {
			t.Fatalf("evaluate %q: %v", tc.response, err)
		}
		if result.Verdict != tc.want {
			t.Fatalf("%s %q: got %s, want %s", tc.variant, tc.response, result.Verdict, tc.want)
		}
	}
}

func TestMultipleChoiceIsScoredBySelection(t *testing.T) {
	completer := &recordingCompleter{reply: "correct"}
	j, err := New(Options{Completer: completer, Model: "gpt-5"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	entry := suite.Entry{
		Word:    "gato",
		Choices: []string{"Herramienta manual", "Mamífero felino", "Lugar público"},
		Answer:  "Mamífero felino",
	}
	ctx := testutil.Context(t, 0)

	right, err := j.Evaluate(ctx, suite.VariantA, entry, "B)")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if right.Verdict != store.JudgmentCorrect || right.Selected != "Mamífero felino" {
		t.Fatalf("unexpected result: %+v", right)
	}
	wrong, err := j.Evaluate(ctx, suite.VariantA, entry, "A")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if wrong.Verdict != store.JudgmentIncorrect {
		t.Fatalf("unexpected result: %+v", wrong)
	}
	if len(completer.prompts) != 0 {
		t.Fatalf("multiple choice should not call the judge model")
	}
}

func TestEvaluateUnknownVariant(t *testing.T) {
	j, err := New(Options{Rules: map[suite.Variant]VariantRule{suite.VariantA: {Mode: ModeExact}}})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	_, err = j.Evaluate(testutil.Context(t, 0), suite.VariantB, suite.Entry{Word: "w", Answer: "a"}, "a")
	if err == nil || !strings.Contains(err.Error(), "no judge rule") {
		t.Fatalf("expected missing rule error, got %v", err)
	}
}
