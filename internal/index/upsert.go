package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"lexeval/internal/report"
	"lexeval/internal/suite"
)

// UpsertModel inserts a model by name and returns its id.
func UpsertModel(ctx context.Context, db *sql.DB, name string) (string, error) {
	if db == nil {
		return "", errors.New("index: db is nil")
	}
	if name == "" {
		return "", errors.New("index: model name is empty")
	}
	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO models (model_id, model_name, created_at)
		 VALUES (?, ?, now())
		 ON CONFLICT (model_name) DO NOTHING`,
		uuid.NewString(),
		name,
	); err != nil {
		return "", fmt.Errorf("upsert model: %w", err)
	}
	id, err := lookupID(ctx, db, "models", "model_id", "model_name", name)
	if err != nil {
		return "", fmt.Errorf("lookup model id: %w", err)
	}
	return id, nil
}

// UpsertWord inserts or refreshes a word and returns its id.
func UpsertWord(ctx context.Context, db *sql.DB, word, definition string, inSuite bool) (string, error) {
	if db == nil {
		return "", errors.New("index: db is nil")
	}
	if word == "" {
		return "", errors.New("index: word is empty")
	}
	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO words (word_id, word, correct_definition, in_suite)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (word) DO UPDATE SET
		   correct_definition = excluded.correct_definition,
		   in_suite = excluded.in_suite`,
		uuid.NewString(),
		word,
		definition,
		inSuite,
	); err != nil {
		return "", fmt.Errorf("upsert word: %w", err)
	}
	id, err := lookupID(ctx, db, "words", "word_id", "word", word)
	if err != nil {
		return "", fmt.Errorf("lookup word id: %w", err)
	}
	return id, nil
}

// ResponseInput is one (model, word, variant) row.
type ResponseInput struct {
	RunID    string
	ModelID  string
	WordID   string
	Variant  suite.Variant
	Response string
	Verdict  string // stored as written; Correct decides accuracy
	Correct  bool
}

// UpsertResponse inserts or replaces the row keyed by model, word and variant.
func UpsertResponse(ctx context.Context, db *sql.DB, input ResponseInput) error {
	if db == nil {
		return errors.New("index: db is nil")
	}
	if input.ModelID == "" || input.WordID == "" {
		return errors.New("index: response ids are required")
	}
	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO responses (model_id, word_id, variant, response, verdict, correct, run_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (model_id, word_id, variant) DO UPDATE SET
		   response = excluded.response,
		   verdict = excluded.verdict,
		   correct = excluded.correct,
		   run_id = excluded.run_id`,
		input.ModelID,
		input.WordID,
		string(input.Variant),
		nullString(input.Response),
		nullString(input.Verdict),
		input.Correct,
		input.RunID,
	); err != nil {
		return fmt.Errorf("upsert response: %w", err)
	}
	return nil
}

// UpsertRun records a run id.
func UpsertRun(ctx context.Context, db *sql.DB, runID string) error {
	if db == nil {
		return errors.New("index: db is nil")
	}
	if runID == "" {
		return errors.New("index: run id is empty")
	}
	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO runs (run_id, ingested_at)
		 VALUES (?, now())
		 ON CONFLICT (run_id) DO UPDATE SET ingested_at = excluded.ingested_at`,
		runID,
	); err != nil {
		return fmt.Errorf("upsert run: %w", err)
	}
	return nil
}

// UpsertSummary stores one model's summary figures for a run.
func UpsertSummary(ctx context.Context, db *sql.DB, runID, modelID string, item report.ModelSummary) error {
	if db == nil {
		return errors.New("index: db is nil")
	}
	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO run_summaries (
		   run_id, model_id, prompt_a_accuracy, prompt_b_accuracy,
		   prompt_a_correct, prompt_b_correct, total, judged_a, judged_b)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (run_id, model_id) DO UPDATE SET
		   prompt_a_accuracy = excluded.prompt_a_accuracy,
		   prompt_b_accuracy = excluded.prompt_b_accuracy,
		   prompt_a_correct = excluded.prompt_a_correct,
		   prompt_b_correct = excluded.prompt_b_correct,
		   total = excluded.total,
		   judged_a = excluded.judged_a,
		   judged_b = excluded.judged_b`,
		runID,
		modelID,
		item.PromptAAccuracy,
		item.PromptBAccuracy,
		item.PromptACorrect,
		item.PromptBCorrect,
		item.Total,
		item.JudgedA,
		item.JudgedB,
	); err != nil {
		return fmt.Errorf("upsert summary: %w", err)
	}
	return nil
}
