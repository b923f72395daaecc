package mcq

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lexeval/internal/suite"
)

func TestCleanDefinition(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "1. f. Planta de la familia de las gramíneas. Sin.: hierba.", want: "Planta de la familia de las gramíneas."},
		{input: "1. tr. Mover algo de un lugar a otro. Ant.: dejar.", want: "Mover algo de un lugar a otro."},
		{input: "  Sin marcador.  ", want: "Sin marcador."},
		{input: "1. m. 1. adj. Doble marcador.", want: "Doble marcador."},
	}
	for _, tc := range cases {
		if got := CleanDefinition(tc.input); got != tc.want {
			t.Fatalf("CleanDefinition(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := map[string]Category{
		"Mamífero carnívoro de la familia de los félidos.": CategoryBiological,
		"Aparato que sirve para medir la presión.":         CategoryTools,
		"Persona que ejerce la medicina.":                  CategoryPeople,
		"Realizar un trabajo con esmero.":                  CategoryActions,
		"Edificio destinado a la enseñanza.":               CategoryPlaces,
		"Cualidad de justo.":                               CategoryConcepts,
	}
	for definition, want := range cases {
		if got := Classify(definition); got != want {
			t.Fatalf("Classify(%q) = %s, want %s", definition, got, want)
		}
	}
}

func TestEntryContainsAnswerAndThreeDistractors(t *testing.T) {
	builder := NewBuilder(rand.New(rand.NewSource(7)))
	entry := builder.Entry(DictionaryEntry{Word: "gato", Definition: "1. m. Mamífero felino doméstico. Sin.: minino."})

	if entry.Answer != "Mamífero felino doméstico." {
		t.Fatalf("unexpected answer: %q", entry.Answer)
	}
	if entry.Question != "¿Cuál es la definición correcta de 'gato'?" {
		t.Fatalf("unexpected question: %q", entry.Question)
	}
	if len(entry.Choices) != 4 {
		t.Fatalf("expected 4 choices, got %d", len(entry.Choices))
	}
	found := 0
	for _, choice := range entry.Choices {
		if choice == entry.Answer {
			found++
		}
	}
	if found != 1 {
		t.Fatalf("expected answer exactly once in %v", entry.Choices)
	}
}

func TestDistractorsAreDistinctTemplates(t *testing.T) {
	builder := NewBuilder(rand.New(rand.NewSource(3)))
	known := map[string]bool{}
	for _, category := range Categories {
		for _, template := range Templates(category) {
			known[template] = true
		}
	}
	for i := 0; i < 50; i++ {
		distractors := builder.Distractors("Planta trepadora.")
		if len(distractors) != distractorCount {
			t.Fatalf("expected %d distractors, got %d", distractorCount, len(distractors))
		}
		for _, distractor := range distractors {
			if !known[distractor] {
				t.Fatalf("unknown distractor %q", distractor)
			}
		}
	}
}

func TestBuildIsReproducibleWithSeed(t *testing.T) {
	dictionary := []DictionaryEntry{
		{Word: "gato", Definition: "1. m. Mamífero felino."},
		{Word: "martillo", Definition: "1. m. Herramienta de percusión."},
	}
	first := NewBuilder(rand.New(rand.NewSource(42))).Build(dictionary, nil)
	second := NewBuilder(rand.New(rand.NewSource(42))).Build(dictionary, nil)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("builds differ with same seed (-first +second):\n%s", diff)
	}
}

func TestBuildKeepsExistingEntries(t *testing.T) {
	existing := []suite.Entry{{Word: "gato", Question: "manual", Choices: []string{"x", "y"}, Answer: "x"}}
	dictionary := []DictionaryEntry{
		{Word: "gato", Definition: "1. m. Mamífero felino."},
		{Word: "perro", Definition: "1. m. Mamífero cánido."},
	}
	entries := NewBuilder(rand.New(rand.NewSource(1))).Build(dictionary, existing)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if diff := cmp.Diff(existing[0], entries[0]); diff != "" {
		t.Fatalf("existing entry changed (-want +got):\n%s", diff)
	}
	if entries[1].Word != "perro" || entries[1].Answer != "Mamífero cánido." {
		t.Fatalf("unexpected generated entry: %+v", entries[1])
	}
}

func TestWriteThenLoadAsSuiteVocabulary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite", "vocabulary_complete.json")
	entries := NewBuilder(rand.New(rand.NewSource(5))).Build([]DictionaryEntry{
		{Word: "ñandú", Definition: "1. m. Ave corredora americana."},
	}, nil)
	if err := Write(path, entries); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := LoadExisting(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(entries, loaded); diff != "" {
		t.Fatalf("vocabulary mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadExistingMissingFile(t *testing.T) {
	entries, err := LoadExisting(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil || entries != nil {
		t.Fatalf("expected no entries, got %v %v", entries, err)
	}
}
