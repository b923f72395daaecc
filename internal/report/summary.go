package report

import (
	"lexeval/internal/store"
	"lexeval/internal/suite"
)

// RecordLoader reads a stored record for a (model, word) pair.
type RecordLoader interface {
	Load(model, word string) (store.Record, error)
}

// ModelSummary holds per-model accuracy for both prompt variants.
type ModelSummary struct {
	PromptAAccuracy float64 `json:"prompt_a_accuracy"`
	PromptBAccuracy float64 `json:"prompt_b_accuracy"`
	PromptACorrect  int     `json:"prompt_a_correct"`
	PromptBCorrect  int     `json:"prompt_b_correct"`
	Total           int     `json:"total"`
	JudgedA         int     `json:"judged_a"`
	JudgedB         int     `json:"judged_b"`
}

// Summary maps model names to their accuracy figures.
type Summary map[string]ModelSummary

// Accuracy converts a correct count into a percentage of total. An empty
// vocabulary scores zero.
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// CalculateAccuracy returns the share of vocabulary words whose verdict for
// variant is correct. Missing records and verdicts count as not correct.
func CalculateAccuracy(loader RecordLoader, model string, vocabulary []suite.Entry, variant suite.Variant) (float64, error) {
	correct := 0
	for _, entry := range vocabulary {
		record, err := loader.Load(model, entry.Word)
		if err != nil {
			return 0, err
		}
		if record.IsCorrect(variant) {
			correct++
		}
	}
	return Accuracy(correct, len(vocabulary)), nil
}

// Build folds stored verdicts into a summary for every model.
func Build(loader RecordLoader, models []string, vocabulary []suite.Entry) (Summary, error) {
	summary := make(Summary, len(models))
	for _, model := range models {
		item := ModelSummary{Total: len(vocabulary)}
		for _, entry := range vocabulary {
			record, err := loader.Load(model, entry.Word)
			if err != nil {
				return nil, err
			}
			if record.JudgmentA != "" {
				item.JudgedA++
			}
			if record.JudgmentB != "" {
				item.JudgedB++
			}
			if record.IsCorrect(suite.VariantA) {
				item.PromptACorrect++
			}
			if record.IsCorrect(suite.VariantB) {
				item.PromptBCorrect++
			}
		}
		item.PromptAAccuracy = Accuracy(item.PromptACorrect, item.Total)
		item.PromptBAccuracy = Accuracy(item.PromptBCorrect, item.Total)
		summary[model] = item
	}
	return summary, nil
}
