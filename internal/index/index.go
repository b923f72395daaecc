// Package index mirrors stored records and run summaries into a DuckDB
// database for ad-hoc SQL analysis.
package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lexeval/internal/report"
	"lexeval/internal/store"
	"lexeval/internal/suite"
)

// Index ingests records from a store into a DuckDB database.
type Index struct {
	db         *sql.DB
	store      *store.Store
	vocabulary []suite.Entry
}

// New returns an Index over db. The vocabulary marks which words count
// towards accuracy.
func New(db *sql.DB, st *store.Store, vocabulary []suite.Entry) (*Index, error) {
	if db == nil {
		return nil, errors.New("index: db is nil")
	}
	if st == nil {
		return nil, errors.New("index: store is nil")
	}
	return &Index{db: db, store: st, vocabulary: vocabulary}, nil
}

// Ingest upserts every stored record for models plus the run summary.
// Re-ingesting the same state leaves the tables unchanged.
func (x *Index) Ingest(ctx context.Context, runID string, models []string, summary report.Summary) error {
	if err := UpsertRun(ctx, x.db, runID); err != nil {
		return err
	}
	if _, err := x.db.ExecContext(ctx, `UPDATE words SET in_suite = false WHERE in_suite`); err != nil {
		return fmt.Errorf("reset suite words: %w", err)
	}
	wordIDs := make(map[string]string, len(x.vocabulary))
	for _, entry := range x.vocabulary {
		id, err := UpsertWord(ctx, x.db, entry.Word, entry.Answer, true)
		if err != nil {
			return err
		}
		wordIDs[entry.Word] = id
	}

	modelIDs := make(map[string]string, len(models))
	for _, model := range models {
		modelID, err := UpsertModel(ctx, x.db, model)
		if err != nil {
			return err
		}
		modelIDs[model] = modelID
		records, err := x.store.List(model)
		if err != nil {
			return fmt.Errorf("list %s: %w", model, err)
		}
		for _, record := range records {
			wordID, ok := wordIDs[record.Word]
			if !ok {
				wordID, err = UpsertWord(ctx, x.db, record.Word, record.CorrectDefinition, false)
				if err != nil {
					return err
				}
				wordIDs[record.Word] = wordID
			}
			if err := x.ingestRecord(ctx, runID, modelID, wordID, record); err != nil {
				return fmt.Errorf("ingest %s/%s: %w", model, record.Word, err)
			}
		}
	}

	for model, item := range summary {
		modelID, ok := modelIDs[model]
		if !ok {
			var err error
			modelID, err = UpsertModel(ctx, x.db, model)
			if err != nil {
				return err
			}
		}
		if err := UpsertSummary(ctx, x.db, runID, modelID, item); err != nil {
			return err
		}
	}
	return nil
}

func (x *Index) ingestRecord(ctx context.Context, runID, modelID, wordID string, record store.Record) error {
	for _, variant := range suite.Variants {
		response := record.Response(variant)
		verdict := record.Judgment(variant)
		if response == "" && verdict == "" {
			continue
		}
		if err := UpsertResponse(ctx, x.db, ResponseInput{
			RunID:    runID,
			ModelID:  modelID,
			WordID:   wordID,
			Variant:  variant,
			Response: response,
			Verdict:  verdict,
			Correct:  record.IsCorrect(variant),
		}); err != nil {
			return err
		}
	}
	return nil
}

const accuracyQuery = `
SELECT
  m.model_name,
  COUNT(*) FILTER (WHERE r.variant = 'a' AND r.correct) AS correct_a,
  COUNT(*) FILTER (WHERE r.variant = 'b' AND r.correct) AS correct_b,
  COUNT(*) FILTER (WHERE r.variant = 'a' AND r.verdict IS NOT NULL) AS judged_a,
  COUNT(*) FILTER (WHERE r.variant = 'b' AND r.verdict IS NOT NULL) AS judged_b
FROM models m
LEFT JOIN responses r
  ON r.model_id = m.model_id
 AND r.word_id IN (SELECT word_id FROM words WHERE in_suite)
GROUP BY m.model_name
ORDER BY m.model_name`

// AccuracyByModel recomputes per-model accuracy from the indexed rows over
// the words of the last ingested suite.
func (x *Index) AccuracyByModel(ctx context.Context) (report.Summary, error) {
	var total int
	if err := x.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM words WHERE in_suite`).Scan(&total); err != nil {
		return nil, fmt.Errorf("count suite words: %w", err)
	}
	rows, err := x.db.QueryContext(ctx, accuracyQuery)
	if err != nil {
		return nil, fmt.Errorf("query accuracy: %w", err)
	}
	defer rows.Close()
	summary := report.Summary{}
	for rows.Next() {
		var (
			model string
			item  = report.ModelSummary{Total: total}
		)
		if err := rows.Scan(&model, &item.PromptACorrect, &item.PromptBCorrect, &item.JudgedA, &item.JudgedB); err != nil {
			return nil, fmt.Errorf("scan accuracy: %w", err)
		}
		item.PromptAAccuracy = report.Accuracy(item.PromptACorrect, total)
		item.PromptBAccuracy = report.Accuracy(item.PromptBCorrect, total)
		summary[model] = item
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read accuracy: %w", err)
	}
	return summary, nil
}

// RunSummary returns the summary stored for runID.
func (x *Index) RunSummary(ctx context.Context, runID string) (report.Summary, error) {
	rows, err := x.db.QueryContext(ctx, `
SELECT m.model_name, s.prompt_a_accuracy, s.prompt_b_accuracy, s.prompt_a_correct,
       s.prompt_b_correct, s.total, s.judged_a, s.judged_b
FROM run_summaries s
JOIN models m ON m.model_id = s.model_id
WHERE s.run_id = ?
ORDER BY m.model_name`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run summary: %w", err)
	}
	defer rows.Close()
	summary := report.Summary{}
	for rows.Next() {
		var (
			model string
			item  report.ModelSummary
		)
		if err := rows.Scan(&model, &item.PromptAAccuracy, &item.PromptBAccuracy, &item.PromptACorrect,
			&item.PromptBCorrect, &item.Total, &item.JudgedA, &item.JudgedB); err != nil {
			return nil, fmt.Errorf("scan run summary: %w", err)
		}
		summary[model] = item
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read run summary: %w", err)
	}
	return summary, nil
}
