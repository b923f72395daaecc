//go:build cucumber
// +build cucumber

package cucumber

import (
	"fmt"
	"strings"

	"lexeval/internal/cli"
	"lexeval/internal/testutil"
)

// iRunCommand executes a CLI command for the scenario.
func (s *featureState) iRunCommand(command string) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("command is empty")
	}
	if args[0] == "lexeval" {
		args = args[1:]
	}
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args, &s.stdout, &s.stderr)
	return nil
}

// theCandidateAnswers fixes the candidate reply for prompts about word.
func (s *featureState) theCandidateAnswers(word, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[word] = testutil.Reply(text)
	return nil
}

// theCandidateAnswersNothing makes the candidate return null content for word.
func (s *featureState) theCandidateAnswersNothing(word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[word] = testutil.CompletionReply{}
	return nil
}

// reply answers the fake completion server. The judge accepts candidate
// answers that repeat the reference definition's first word.
func (s *featureState) reply(model, prompt string) testutil.CompletionReply {
	if model == "judge-model" {
		if strings.Contains(prompt, "Mamífero") && strings.Count(prompt, "Mamífero") > 1 {
			return testutil.Reply("correct")
		}
		return testutil.Reply("incorrect.")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for word, reply := range s.replies {
		if strings.Contains(prompt, `"`+word+`"`) {
			return reply
		}
	}
	return testutil.Reply("No lo sé")
}
