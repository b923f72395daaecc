package suite

import (
	"strings"
)

// Variant identifies one of the two prompt templates.
type Variant string

const (
	// VariantA asks the model for a definition.
	VariantA Variant = "a"
	// VariantB asks the model to use the word in context.
	VariantB Variant = "b"
)

// Variants lists prompt variants in evaluation order.
var Variants = []Variant{VariantA, VariantB}

// WordPlaceholder is substituted with the vocabulary word in prompt templates.
const WordPlaceholder = "{word}"

// Prompts holds the prompt templates loaded from prompts.json.
type Prompts struct {
	PromptA string `json:"prompt_a" yaml:"prompt_a"`
	PromptB string `json:"prompt_b" yaml:"prompt_b"`
}

// Template returns the raw template for a variant.
func (p Prompts) Template(variant Variant) string {
	switch variant {
	case VariantA:
		return p.PromptA
	case VariantB:
		return p.PromptB
	default:
		return ""
	}
}

// Render substitutes the word into the variant template.
func (p Prompts) Render(variant Variant, word string) string {
	return strings.ReplaceAll(p.Template(variant), WordPlaceholder, word)
}

// Entry is one vocabulary item. Entries with choices are multiple choice.
type Entry struct {
	Word     string   `json:"word" yaml:"word"`
	Question string   `json:"question,omitempty" yaml:"question,omitempty"`
	Choices  []string `json:"choices,omitempty" yaml:"choices,omitempty"`
	Answer   string   `json:"answer" yaml:"answer"`
}

// IsMultipleChoice reports whether the entry offers answer choices.
func (e Entry) IsMultipleChoice() bool {
	return len(e.Choices) > 0
}

// Suite bundles everything loaded from the suite directory.
type Suite struct {
	Models     []string
	Prompts    Prompts
	Vocabulary []Entry
}

// Paths locates the three suite files.
type Paths struct {
	Vocabulary string
	Prompts    string
	Models     string
}
