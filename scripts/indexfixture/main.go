// Command indexfixture writes a synthetic response store and the matching
// DuckDB index, for exercising the index and report at scale.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"lexeval/internal/index"
	"lexeval/internal/report"
	"lexeval/internal/store"
	"lexeval/internal/suite"
)

// fixtureConfig defines the JSON config for generating a fixture.
type fixtureConfig struct {
	Name        string  `json:"name"`
	Models      int     `json:"models"`
	Words       int     `json:"words"`
	CorrectRate float64 `json:"correct_rate"`
	Seed        int64   `json:"seed"`
}

func main() {
	configPath := flag.String("config", "", "path to fixture config JSON")
	outDir := flag.String("out", "", "output directory")
	flag.Parse()
	if *configPath == "" || *outDir == "" {
		fmt.Fprintln(os.Stderr, "usage: indexfixture --config <path> --out <dir>")
		os.Exit(2)
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := removeIfExists(*outDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := generateFixture(ctx, *outDir, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "generate fixture: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (fixtureConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fixtureConfig{}, err
	}
	var cfg fixtureConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fixtureConfig{}, err
	}
	if cfg.Models <= 0 || cfg.Words <= 0 {
		return fixtureConfig{}, fmt.Errorf("models and words must be positive")
	}
	if cfg.CorrectRate <= 0 {
		cfg.CorrectRate = 0.5
	}
	return cfg, nil
}

func generateFixture(ctx context.Context, dir string, cfg fixtureConfig) error {
	rng := rand.New(rand.NewSource(cfg.Seed))
	st := store.New(filepath.Join(dir, "output"))

	vocabulary := make([]suite.Entry, 0, cfg.Words)
	for i := 0; i < cfg.Words; i++ {
		vocabulary = append(vocabulary, suite.Entry{
			Word:   fmt.Sprintf("palabra%05d", i),
			Answer: fmt.Sprintf("Definición sintética número %d.", i),
		})
	}
	models := make([]string, 0, cfg.Models)
	for i := 0; i < cfg.Models; i++ {
		models = append(models, fmt.Sprintf("%s-model-%02d", cfg.Name, i))
	}

	for _, model := range models {
		for _, entry := range vocabulary {
			fields := store.Fields{
				ModelResponseA: "Respuesta A para " + entry.Word,
				ModelResponseB: "Respuesta B para " + entry.Word,
				JudgmentA:      verdict(rng, cfg.CorrectRate),
				JudgmentB:      verdict(rng, cfg.CorrectRate),
			}
			if _, err := st.SaveResponse(model, entry.Word, entry.Answer, fields); err != nil {
				return err
			}
		}
	}

	summary, err := report.Build(st, models, vocabulary)
	if err != nil {
		return err
	}
	if err := report.WriteSummary(filepath.Join(dir, "summary.json"), summary, models); err != nil {
		return err
	}

	db, err := index.Open(ctx, filepath.Join(dir, "index.duckdb"))
	if err != nil {
		return err
	}
	defer db.Close()
	idx, err := index.New(db, st, vocabulary)
	if err != nil {
		return err
	}
	return idx.Ingest(ctx, deterministicID("run", cfg.Name), models, summary)
}

func verdict(rng *rand.Rand, rate float64) string {
	if rng.Float64() < rate {
		return store.JudgmentCorrect
	}
	return store.JudgmentIncorrect
}

// removeIfExists deletes an existing fixture directory so we always start fresh.
func removeIfExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat fixture: %w", err)
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("remove existing fixture: %w", err)
	}
	return nil
}

// deterministicID generates a repeatable id for fixture rows.
func deterministicID(prefix, name string) string {
	return uuid.NewSHA1(fixtureNamespace, []byte(prefix+"-"+name)).String()
}

var fixtureNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
