package runner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"lexeval/internal/store"
	"lexeval/internal/suite"
)

// Judge scores every stored response that has no verdict yet. Entries with
// no stored response are skipped.
func Judge(ctx context.Context, s suite.Suite, deps Dependencies, opts Options) ([]PhaseStats, error) {
	deps = deps.withDefaults()
	if deps.Store == nil {
		return nil, fmt.Errorf("judge: store is required")
	}
	if deps.Judge == nil {
		return nil, fmt.Errorf("judge: judge is required")
	}
	all := make([]PhaseStats, 0, len(s.Models))
	for _, model := range s.Models {
		stats, err := runPhase(ctx, PhaseJudge, model, s.Vocabulary, deps, opts, judgeEntry)
		all = append(all, stats)
		if err != nil {
			return all, err
		}
	}
	return all, nil
}

func judgeEntry(ctx context.Context, p *phaseRun, index int, entry suite.Entry) error {
	record, err := p.deps.Store.Load(p.model, entry.Word)
	if err != nil {
		return err
	}
	for variantIndex, variant := range suite.Variants {
		item := itemIndex(index, variantIndex)
		if record.Judgment(variant) != "" {
			p.emit(item, entry, variant, ItemSkipped, "already judged", nil, 0)
			continue
		}
		response := record.Response(variant)
		if response == "" {
			p.emit(item, entry, variant, ItemSkipped, "no response", nil, 0)
			continue
		}

		p.emit(item, entry, variant, ItemRunning, "", nil, 0)
		started := time.Now()
		result, err := p.deps.Judge.Evaluate(ctx, variant, entry, response)
		wall := time.Since(started)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.deps.Logger.Warn("judgment failed",
				zap.String("model", p.model),
				zap.String("word", entry.Word),
				zap.String("variant", string(variant)),
				zap.Error(err),
			)
			p.emit(item, entry, variant, ItemError, "", err, wall)
			continue
		}

		judgmentA, judgmentB := "", ""
		if variant == suite.VariantA {
			judgmentA = result.Verdict
		} else {
			judgmentB = result.Verdict
		}
		record, err = p.deps.Store.UpdateJudgment(p.model, entry.Word, judgmentA, judgmentB)
		if err != nil {
			return err
		}
		eventType := ItemIncorrect
		if result.Verdict == store.JudgmentCorrect {
			eventType = ItemCorrect
		}
		p.emit(item, entry, variant, eventType, result.Selected, nil, wall)
	}
	return nil
}
