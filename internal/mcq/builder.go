package mcq

import (
	"fmt"
	"math/rand"
	"strings"

	"lexeval/internal/suite"
)

const (
	distractorCount = 3
	mixProbability  = 0.3
)

var senseMarkers = []string{"1. f. ", "1. m. ", "1. adj. ", "1. tr. ", "1. intr. "}

var crossReferenceMarkers = []string{"Sin.:", "Ant.:"}

// DictionaryEntry is one word from a dictionary dump.
type DictionaryEntry struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

// CleanDefinition drops leading sense markers and trailing synonym or
// antonym lists.
func CleanDefinition(definition string) string {
	cleaned := strings.TrimSpace(definition)
	for trimmed := true; trimmed; {
		trimmed = false
		for _, marker := range senseMarkers {
			if strings.HasPrefix(cleaned, marker) {
				cleaned = strings.TrimPrefix(cleaned, marker)
				trimmed = true
			}
		}
	}
	for _, marker := range crossReferenceMarkers {
		if index := strings.Index(cleaned, marker); index >= 0 {
			cleaned = cleaned[:index]
		}
	}
	return strings.TrimSpace(cleaned)
}

// Classify picks the distractor category for a definition by keyword.
func Classify(definition string) Category {
	lowered := strings.ToLower(definition)
	for _, group := range categoryKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(lowered, keyword) {
				return group.category
			}
		}
	}
	return CategoryConcepts
}

// Builder turns dictionary entries into multiple-choice vocabulary entries.
type Builder struct {
	rng *rand.Rand
}

// NewBuilder returns a builder drawing randomness from rng.
func NewBuilder(rng *rand.Rand) *Builder {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Builder{rng: rng}
}

// Distractors returns three wrong definitions for the given definition.
func (b *Builder) Distractors(definition string) []string {
	category := Classify(definition)
	templates := distractorTemplates[category]
	picked := make([]string, 0, distractorCount)
	for _, index := range b.rng.Perm(len(templates))[:distractorCount] {
		picked = append(picked, templates[index])
	}
	if b.rng.Float64() < mixProbability {
		others := make([]Category, 0, len(Categories)-1)
		for _, candidate := range Categories {
			if candidate != category {
				others = append(others, candidate)
			}
		}
		mixed := distractorTemplates[others[b.rng.Intn(len(others))]]
		picked[len(picked)-1] = mixed[b.rng.Intn(len(mixed))]
	}
	return picked
}

// Entry builds the multiple-choice entry for one dictionary word.
func (b *Builder) Entry(item DictionaryEntry) suite.Entry {
	definition := CleanDefinition(item.Definition)
	choices := append([]string{definition}, b.Distractors(definition)...)
	b.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	return suite.Entry{
		Word:     item.Word,
		Question: Question(item.Word),
		Choices:  choices,
		Answer:   definition,
	}
}

// Build keeps existing entries as-is and appends generated entries for
// dictionary words not already present.
func (b *Builder) Build(dictionary []DictionaryEntry, existing []suite.Entry) []suite.Entry {
	seen := make(map[string]struct{}, len(existing))
	entries := make([]suite.Entry, 0, len(existing)+len(dictionary))
	for _, entry := range existing {
		seen[entry.Word] = struct{}{}
		entries = append(entries, entry)
	}
	for _, item := range dictionary {
		if _, ok := seen[item.Word]; ok {
			continue
		}
		seen[item.Word] = struct{}{}
		entries = append(entries, b.Entry(item))
	}
	return entries
}

// Question is the prompt text attached to generated entries.
func Question(word string) string {
	return fmt.Sprintf("¿Cuál es la definición correcta de '%s'?", word)
}
