//go:build cucumber
// +build cucumber

package cucumber

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"lexeval/internal/report"
	"lexeval/internal/store"
	"lexeval/internal/suite"
)

// theOutputListsCommands asserts the output contains expected command names.
func (s *featureState) theOutputListsCommands(table *godog.Table) error {
	output := s.stdout.String()
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			command := strings.TrimSpace(cell.Value)
			if command == "" {
				continue
			}
			if !strings.Contains(output, command) {
				return fmt.Errorf("expected command %q in output", command)
			}
		}
	}
	return nil
}

// theExitCodeIs asserts the CLI exit code.
func (s *featureState) theExitCodeIs(code int) error {
	if s.exitCode != code {
		return fmt.Errorf("expected exit code %d, got %d (stderr: %s)", code, s.exitCode, s.stderr.String())
	}
	return nil
}

// theExitCodeIsNonZero asserts that the CLI returned an error code.
func (s *featureState) theExitCodeIsNonZero() error {
	if s.exitCode == 0 {
		return fmt.Errorf("expected non-zero exit code")
	}
	return nil
}

// theOutputContains asserts stdout contains text.
func (s *featureState) theOutputContains(text string) error {
	if !strings.Contains(s.stdout.String(), text) {
		return fmt.Errorf("expected %q in output, got %q", text, s.stdout.String())
	}
	return nil
}

// theErrorOutputContains asserts stderr contains text.
func (s *featureState) theErrorOutputContains(text string) error {
	if !strings.Contains(s.stderr.String(), text) {
		return fmt.Errorf("expected %q in error output, got %q", text, s.stderr.String())
	}
	return nil
}

// theServerReceived asserts the total number of completion requests.
func (s *featureState) theServerReceived(count int) error {
	if s.server == nil {
		return fmt.Errorf("no completion server")
	}
	if got := s.server.Count(); got != count {
		return fmt.Errorf("expected %d requests, got %d", count, got)
	}
	return nil
}

// theSummaryReportsAccuracy reads summary.json and checks prompt A accuracy.
func (s *featureState) theSummaryReportsAccuracy(value, model string) error {
	want, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	summary, err := report.LoadSummary(filepath.Join(s.projectDir, "summary.json"))
	if err != nil {
		return err
	}
	item, ok := summary[model]
	if !ok {
		return fmt.Errorf("model %q missing from summary", model)
	}
	if math.Abs(item.PromptAAccuracy-want) > 0.05 {
		return fmt.Errorf("expected prompt A accuracy %.1f, got %.1f", want, item.PromptAAccuracy)
	}
	return nil
}

// theRecordHasNoResponse asserts a variant response was not persisted.
func (s *featureState) theRecordHasNoResponse(model, word, variant string) error {
	record, err := store.New(filepath.Join(s.projectDir, "output")).Load(model, word)
	if err != nil {
		return err
	}
	if response := record.Response(suite.Variant(variant)); response != "" {
		return fmt.Errorf("expected no response for %s/%s variant %s, got %q", model, word, variant, response)
	}
	return nil
}
