package runner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"lexeval/internal/store"
	"lexeval/internal/suite"
)

// Generate queries every model for every entry and variant whose response is
// not stored yet. Stored responses are never requested again.
func Generate(ctx context.Context, s suite.Suite, deps Dependencies, opts Options) ([]PhaseStats, error) {
	deps = deps.withDefaults()
	if deps.Store == nil {
		return nil, fmt.Errorf("generate: store is required")
	}
	if deps.Candidate == nil {
		return nil, fmt.Errorf("generate: candidate completer is required")
	}
	all := make([]PhaseStats, 0, len(s.Models))
	for _, model := range s.Models {
		stats, err := runPhase(ctx, PhaseGenerate, model, s.Vocabulary, deps, opts,
			func(ctx context.Context, p *phaseRun, index int, entry suite.Entry) error {
				return generateEntry(ctx, p, s.Prompts, index, entry)
			})
		all = append(all, stats)
		if err != nil {
			return all, err
		}
	}
	return all, nil
}

func generateEntry(ctx context.Context, p *phaseRun, prompts suite.Prompts, index int, entry suite.Entry) error {
	record, err := p.deps.Store.Load(p.model, entry.Word)
	if err != nil {
		return err
	}
	for variantIndex, variant := range suite.Variants {
		item := itemIndex(index, variantIndex)
		if record.Response(variant) != "" {
			p.emit(item, entry, variant, ItemSkipped, "already answered", nil, 0)
			continue
		}

		p.emit(item, entry, variant, ItemRunning, "", nil, 0)
		started := time.Now()
		text, err := p.deps.Candidate.Complete(ctx, p.model, prompts.RenderEntry(variant, entry))
		wall := time.Since(started)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.deps.Logger.Warn("completion failed",
				zap.String("model", p.model),
				zap.String("word", entry.Word),
				zap.String("variant", string(variant)),
				zap.Error(err),
			)
			p.emit(item, entry, variant, ItemError, "", err, wall)
			continue
		}
		if strings.TrimSpace(text) == "" {
			p.deps.Logger.Debug("empty completion",
				zap.String("model", p.model),
				zap.String("word", entry.Word),
				zap.String("variant", string(variant)),
			)
			p.emit(item, entry, variant, ItemEmpty, "empty completion", nil, wall)
			continue
		}

		record, err = p.deps.Store.SaveResponse(p.model, entry.Word, entry.Answer, store.ResponseFields(variant, text))
		if err != nil {
			return err
		}
		p.emit(item, entry, variant, ItemSaved, "", nil, wall)
	}
	return nil
}
