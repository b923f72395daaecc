package judge

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"lexeval/internal/answer"
	"lexeval/internal/prompt"
	"lexeval/internal/provider"
	"lexeval/internal/suite"
)

// Mode selects how a variant is scored.
type Mode string

const (
	ModeModel Mode = "model"
	ModeExact Mode = "exact"
	ModeFuzzy Mode = "fuzzy"
)

// DefaultFuzzyThreshold is the minimum similarity accepted in fuzzy mode.
const DefaultFuzzyThreshold = 0.85

// VariantRule configures scoring for one prompt variant.
type VariantRule struct {
	Mode   Mode
	Rubric string
}

// Options configures a Judge.
type Options struct {
	Completer      provider.Completer
	Model          string
	FuzzyThreshold float64
	Rules          map[suite.Variant]VariantRule
	Logger         *zap.Logger
}

// Result is the outcome of scoring one response.
type Result struct {
	Verdict string
	// Selected is the choice picked from a multiple-choice response.
	Selected string
	// Reply is the raw judge model reply in model mode.
	Reply string
}

// Judge scores stored responses against reference definitions.
type Judge struct {
	completer provider.Completer
	model     string
	threshold float64
	rules     map[suite.Variant]VariantRule
	logger    *zap.Logger
}

// DefaultRules scores variant A with the definition rubric and variant B with
// the usage rubric.
func DefaultRules() map[suite.Variant]VariantRule {
	return map[suite.Variant]VariantRule{
		suite.VariantA: {Mode: ModeModel, Rubric: prompt.RubricDefinition},
		suite.VariantB: {Mode: ModeModel, Rubric: prompt.RubricUsage},
	}
}

// NeedsModel reports whether any rule delegates to a judge model.
func NeedsModel(rules map[suite.Variant]VariantRule) bool {
	for _, rule := range rules {
		if rule.Mode == ModeModel {
			return true
		}
	}
	return false
}

// New validates options and returns a Judge.
func New(opts Options) (*Judge, error) {
	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	for variant, rule := range rules {
		switch rule.Mode {
		case ModeModel:
			if opts.Completer == nil {
				return nil, fmt.Errorf("variant %s: model mode requires a judge completer", variant)
			}
			if opts.Model == "" {
				return nil, fmt.Errorf("variant %s: model mode requires a judge model", variant)
			}
			if _, err := prompt.JudgePrompt(rule.Rubric, "", "", ""); err != nil {
				return nil, fmt.Errorf("variant %s: %w", variant, err)
			}
		case ModeExact, ModeFuzzy:
		default:
			return nil, fmt.Errorf("variant %s: unknown mode %q", variant, rule.Mode)
		}
	}
	threshold := opts.FuzzyThreshold
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Judge{
		completer: opts.Completer,
		model:     opts.Model,
		threshold: threshold,
		rules:     rules,
		logger:    logger,
	}, nil
}

// Evaluate scores a response for entry under variant. Multiple-choice
// entries are scored by the choice the response selects in every mode.
func (j *Judge) Evaluate(ctx context.Context, variant suite.Variant, entry suite.Entry, response string) (Result, error) {
	rule, ok := j.rules[variant]
	if !ok {
		return Result{}, fmt.Errorf("no judge rule for variant %s", variant)
	}
	if entry.IsMultipleChoice() {
		selected, matched := answer.SelectChoice(response, entry.Choices)
		correct := matched && answer.Equal(selected, entry.Answer)
		return Result{Verdict: verdictFor(correct), Selected: selected}, nil
	}

	switch rule.Mode {
	case ModeExact:
		return Result{Verdict: verdictFor(answer.Equal(candidateText(response), entry.Answer))}, nil
	case ModeFuzzy:
		return Result{Verdict: verdictFor(answer.FuzzyMatch(candidateText(response), entry.Answer, j.threshold))}, nil
	case ModeModel:
		return j.askModel(ctx, variant, rule, entry, response)
	default:
		return Result{}, fmt.Errorf("unknown mode %q", rule.Mode)
	}
}

func (j *Judge) askModel(ctx context.Context, variant suite.Variant, rule VariantRule, entry suite.Entry, response string) (Result, error) {
	text, err := prompt.RenderJudgePrompt(ctx, rule.Rubric, entry.Word, entry.Answer, response)
	if err != nil {
		return Result{}, err
	}
	reply, err := j.completer.Complete(ctx, j.model, text)
	if err != nil {
		return Result{}, fmt.Errorf("judge %s/%s: %w", entry.Word, variant, err)
	}
	verdict, recognized := ParseVerdict(reply)
	if !recognized {
		j.logger.Warn("unrecognized judge reply",
			zap.String("word", entry.Word),
			zap.String("variant", string(variant)),
			zap.String("reply", reply),
		)
	}
	return Result{Verdict: verdict, Reply: reply}, nil
}

// candidateText prefers the last <answer> block when the model gave one.
func candidateText(response string) string {
	return answer.AnswerText(response)
}
