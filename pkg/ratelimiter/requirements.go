package ratelimiter

import "fmt"

// LLMCall captures the fields needed to build LLM limit requirements.
type LLMCall struct {
	Provider        string
	Model           string
	Prompt          string
	MaxOutputTokens uint64
}

// LLMLimits sets per-minute and in-flight caps for one provider/model pair.
// Zero fields are left unlimited.
type LLMLimits struct {
	Provider          string
	Model             string
	RequestsPerMinute uint64
	TokensPerMinute   uint64
	Concurrency       uint64

	// HoldTimeoutSeconds bounds how long a concurrency slot survives a lost completion.
	HoldTimeoutSeconds int
}

// EstimatePromptTokens returns a conservative token estimate for a prompt.
func EstimatePromptTokens(prompt string) uint64 {
	return uint64(len(prompt))
}

// BuildLLMRequirements builds limit requirements for an LLM request.
func BuildLLMRequirements(call LLMCall) []Requirement {
	upper := EstimatePromptTokens(call.Prompt) + call.MaxOutputTokens
	return []Requirement{
		{Key: RPMKey(call.Provider, call.Model), Amount: 1},
		{Key: TPMKey(call.Provider, call.Model), Amount: upper},
		{Key: ConcurrencyKey(call.Provider, call.Model), Amount: 1},
	}
}

// Definitions expands limits into backend definitions.
func (l LLMLimits) Definitions() []LimitDefinition {
	var defs []LimitDefinition
	if l.RequestsPerMinute > 0 {
		defs = append(defs, LimitDefinition{
			Key:           RPMKey(l.Provider, l.Model),
			Kind:          KindRolling,
			Capacity:      l.RequestsPerMinute,
			WindowSeconds: 60,
			Description:   "requests per minute",
		})
	}
	if l.TokensPerMinute > 0 {
		defs = append(defs, LimitDefinition{
			Key:           TPMKey(l.Provider, l.Model),
			Kind:          KindRolling,
			Capacity:      l.TokensPerMinute,
			WindowSeconds: 60,
			Description:   "tokens per minute",
		})
	}
	if l.Concurrency > 0 {
		defs = append(defs, LimitDefinition{
			Key:            ConcurrencyKey(l.Provider, l.Model),
			Kind:           KindConcurrency,
			Capacity:       l.Concurrency,
			TimeoutSeconds: l.HoldTimeoutSeconds,
			Description:    "requests in flight",
		})
	}
	return defs
}

// RPMKey formats the requests-per-minute key for a provider/model pair.
func RPMKey(provider, model string) LimitKey {
	return LimitKey(fmt.Sprintf("llm:%s:%s:rpm", provider, model))
}

// TPMKey formats the tokens-per-minute key for a provider/model pair.
func TPMKey(provider, model string) LimitKey {
	return LimitKey(fmt.Sprintf("llm:%s:%s:tpm", provider, model))
}

// ConcurrencyKey formats the in-flight key for a provider/model pair.
func ConcurrencyKey(provider, model string) LimitKey {
	return LimitKey(fmt.Sprintf("llm:%s:%s:concurrency", provider, model))
}
