package store

import "lexeval/internal/suite"

// Judgment values written by the judge.
const (
	JudgmentCorrect   = "correct"
	JudgmentIncorrect = "incorrect"
)

// Record is the persisted state for one (model, word) pair.
type Record struct {
	Word              string `json:"word"`
	CorrectDefinition string `json:"correct_definition"`
	ModelResponseA    string `json:"model_response_a,omitempty"`
	ModelResponseB    string `json:"model_response_b,omitempty"`
	JudgmentA         string `json:"judgment_a,omitempty"`
	JudgmentB         string `json:"judgment_b,omitempty"`
}

// Fields carries optional values for a merge-save. Empty values leave the
// stored field untouched.
type Fields struct {
	ModelResponseA string
	ModelResponseB string
	JudgmentA      string
	JudgmentB      string
}

// ResponseFields returns Fields with only the response for variant set.
func ResponseFields(variant suite.Variant, response string) Fields {
	switch variant {
	case suite.VariantA:
		return Fields{ModelResponseA: response}
	case suite.VariantB:
		return Fields{ModelResponseB: response}
	default:
		return Fields{}
	}
}

// Response returns the stored model response for a variant.
func (r Record) Response(variant suite.Variant) string {
	switch variant {
	case suite.VariantA:
		return r.ModelResponseA
	case suite.VariantB:
		return r.ModelResponseB
	default:
		return ""
	}
}

// Judgment returns the stored verdict for a variant.
func (r Record) Judgment(variant suite.Variant) string {
	switch variant {
	case suite.VariantA:
		return r.JudgmentA
	case suite.VariantB:
		return r.JudgmentB
	default:
		return ""
	}
}

// IsCorrect reports whether the variant verdict is correct.
func (r Record) IsCorrect(variant suite.Variant) bool {
	return r.Judgment(variant) == JudgmentCorrect
}

// Empty reports whether nothing has been stored for the pair yet.
func (r Record) Empty() bool {
	return r == Record{}
}

func (r *Record) merge(fields Fields) {
	if fields.ModelResponseA != "" {
		r.ModelResponseA = fields.ModelResponseA
	}
	if fields.ModelResponseB != "" {
		r.ModelResponseB = fields.ModelResponseB
	}
	if fields.JudgmentA != "" {
		r.JudgmentA = fields.JudgmentA
	}
	if fields.JudgmentB != "" {
		r.JudgmentB = fields.JudgmentB
	}
}
