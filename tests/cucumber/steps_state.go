//go:build cucumber
// +build cucumber

package cucumber

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/cucumber/godog"

	"lexeval/internal/testutil"
)

// featureState holds scenario state for cucumber CLI tests.
type featureState struct {
	t           testing.TB
	projectDir  string
	configPath  string
	previousWD  string
	previousEnv map[string]*string
	stdout      bytes.Buffer
	stderr      bytes.Buffer
	exitCode    int

	server *testutil.CompletionServer

	mu      sync.Mutex
	replies map[string]testutil.CompletionReply
}

// InitializeScenario wires cucumber steps to the feature state.
func InitializeScenario(ctx *godog.ScenarioContext, t testing.TB) {
	state := &featureState{t: t}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^a lexeval project with models "([^"]*)"$`, state.aProjectWithModels)
	ctx.Step(`^judge credentials are available in the environment$`, state.judgeCredentialsAreAvailable)
	ctx.Step(`^the candidate answers "([^"]*)" with "([^"]*)"$`, state.theCandidateAnswers)
	ctx.Step(`^the candidate answers "([^"]*)" with nothing$`, state.theCandidateAnswersNothing)
	ctx.Step(`^the config is invalid$`, state.theConfigIsInvalid)
	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^the output lists these commands:$`, state.theOutputListsCommands)
	ctx.Step(`^the exit code is (\d+)$`, state.theExitCodeIs)
	ctx.Step(`^the exit code is non-zero$`, state.theExitCodeIsNonZero)
	ctx.Step(`^the output contains "([^"]*)"$`, state.theOutputContains)
	ctx.Step(`^the error output contains "([^"]*)"$`, state.theErrorOutputContains)
	ctx.Step(`^the completion server received (\d+) requests$`, state.theServerReceived)
	ctx.Step(`^the summary reports (\d+(?:\.\d+)?)% prompt A accuracy for "([^"]*)"$`, state.theSummaryReportsAccuracy)
	ctx.Step(`^the record for "([^"]*)" and "([^"]*)" has no response for variant "([ab])"$`, state.theRecordHasNoResponse)
}

// reset clears buffers and resets state before each scenario.
func (s *featureState) reset() {
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0
	s.previousEnv = map[string]*string{}
	s.projectDir = ""
	s.configPath = ""
	s.server = nil
	s.mu.Lock()
	s.replies = map[string]testutil.CompletionReply{}
	s.mu.Unlock()
}

// cleanup restores environment and removes temporary files.
func (s *featureState) cleanup() {
	if s.previousWD != "" {
		_ = os.Chdir(s.previousWD)
		s.previousWD = ""
	}
	for key, value := range s.previousEnv {
		if value == nil {
			_ = os.Unsetenv(key)
			continue
		}
		_ = os.Setenv(key, *value)
	}
	if s.server != nil {
		s.server.Close()
	}
	if s.projectDir != "" {
		_ = os.RemoveAll(s.projectDir)
	}
}

// setEnv records and sets an environment variable for the scenario.
func (s *featureState) setEnv(key, value string) error {
	if s.previousEnv == nil {
		s.previousEnv = map[string]*string{}
	}
	if _, exists := s.previousEnv[key]; !exists {
		if current, ok := os.LookupEnv(key); ok {
			saved := current
			s.previousEnv[key] = &saved
		} else {
			s.previousEnv[key] = nil
		}
	}
	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf("set env %s: %w", key, err)
	}
	return nil
}
