package answer

import (
	"math"
	"testing"
)

func TestSimilarityCountsRunesNotBytes(t *testing.T) {
	// ñ and n differ by one rune edit; a byte count would give a different ratio.
	got := Similarity("año", "ano")
	want := 1 - 1.0/3.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %f, got %f", want, got)
	}
}

func TestSimilarity(t *testing.T) {
	got := Similarity("ardilla", "ardila")
	want := 1 - 1.0/7.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %f, got %f", want, got)
	}
	if Similarity("", "") != 1 {
		t.Fatalf("expected empty strings to be identical")
	}
	if Similarity("Árbol", "arbol") != 1 {
		t.Fatalf("expected accent-insensitive similarity")
	}
}

func TestFuzzyMatch(t *testing.T) {
	if !FuzzyMatch("Es un roedor pequeño", "roedor pequeño", 0.99) {
		t.Fatalf("expected containment to match")
	}
	if !FuzzyMatch("ardila", "ardilla", 0.85) {
		t.Fatalf("expected near miss to match")
	}
	if FuzzyMatch("corbata", "ardilla", 0.85) {
		t.Fatalf("expected unrelated words not to match")
	}
	if FuzzyMatch("algo", "", 0.5) {
		t.Fatalf("expected empty reference not to match")
	}
}
