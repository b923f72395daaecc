package config

import (
	"strings"

	"lexeval/internal/spec"
)

// Provider, mode and rubric names accepted in config files.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	ModeModel = "model"
	ModeExact = "exact"
	ModeFuzzy = "fuzzy"

	RubricDefinition = "definition"
	RubricUsage      = "usage"

	RateLimitDisabled = "disabled"
	RateLimitEmbedded = "embedded"
)

const (
	defaultCandidateBaseURL = "http://localhost:11434/v1"
	defaultJudgeBaseURL     = "https://api.openai.com/v1"
	defaultJudgeModel       = "gpt-5"
	defaultTimeoutSeconds   = 120
	defaultMaxRetries       = 2
	defaultMaxFailures      = 5
	defaultFuzzyThreshold   = 0.85
	defaultLimiterWorkers   = 4
	defaultMaxOutputTokens  = 2048
	defaultHoldTimeout      = 600
)

// defaultRubrics maps each prompt variant to the rubric its judge uses.
var defaultRubrics = map[string]string{
	"a": RubricDefinition,
	"b": RubricUsage,
}

// Normalize fills defaults so a minimal config only names the suite files.
func Normalize(cfg *spec.Config) {
	if strings.TrimSpace(cfg.Output.ResponsesDir) == "" {
		cfg.Output.ResponsesDir = DefaultResponsesDir
	}
	if strings.TrimSpace(cfg.Output.SummaryPath) == "" {
		cfg.Output.SummaryPath = DefaultSummaryPath
	}

	normalizeProvider(&cfg.Candidate)
	if cfg.Candidate.Provider == ProviderOpenAI && strings.TrimSpace(cfg.Candidate.BaseURL) == "" {
		cfg.Candidate.BaseURL = defaultCandidateBaseURL
	}

	normalizeProvider(&cfg.Judge.ProviderConfig)
	if cfg.Judge.Provider == ProviderOpenAI && strings.TrimSpace(cfg.Judge.BaseURL) == "" {
		cfg.Judge.BaseURL = defaultJudgeBaseURL
	}
	if strings.TrimSpace(cfg.Judge.Model) == "" {
		cfg.Judge.Model = defaultJudgeModel
	}
	if strings.TrimSpace(cfg.Judge.APIKeyEnv) == "" {
		cfg.Judge.APIKeyEnv = defaultAPIKeyEnv(cfg.Judge.Provider)
	}
	if cfg.Judge.FuzzyThreshold == 0 {
		cfg.Judge.FuzzyThreshold = defaultFuzzyThreshold
	}
	if cfg.Judge.Variants == nil {
		cfg.Judge.Variants = map[string]spec.VariantConfig{}
	}
	for variant, rubric := range defaultRubrics {
		vc, ok := cfg.Judge.Variants[variant]
		if !ok {
			vc = spec.VariantConfig{Mode: ModeModel}
		}
		vc.Mode = strings.ToLower(strings.TrimSpace(vc.Mode))
		if vc.Mode == "" {
			vc.Mode = ModeModel
		}
		if vc.Mode == ModeModel && strings.TrimSpace(vc.Rubric) == "" {
			vc.Rubric = rubric
		}
		cfg.Judge.Variants[variant] = vc
	}

	if cfg.Concurrency == 0 {
		cfg.Concurrency = 1
	}
	normalizeRateLimiter(&cfg.RateLimiter)
}

func normalizeRateLimiter(rl *spec.RateLimiterConfig) {
	rl.Mode = strings.ToLower(strings.TrimSpace(rl.Mode))
	if rl.Mode == "" {
		rl.Mode = RateLimitDisabled
	}
	if rl.Workers == 0 {
		rl.Workers = defaultLimiterWorkers
	}
	if rl.MaxOutputTokens == 0 {
		rl.MaxOutputTokens = defaultMaxOutputTokens
	}
	if rl.HoldTimeoutSeconds == 0 {
		rl.HoldTimeoutSeconds = defaultHoldTimeout
	}
	for i := range rl.Limits {
		rl.Limits[i].Provider = strings.ToLower(strings.TrimSpace(rl.Limits[i].Provider))
		rl.Limits[i].Model = strings.TrimSpace(rl.Limits[i].Model)
	}
}

func normalizeProvider(pc *spec.ProviderConfig) {
	pc.Provider = strings.ToLower(strings.TrimSpace(pc.Provider))
	if pc.Provider == "" {
		pc.Provider = ProviderOpenAI
	}
	if pc.TimeoutSeconds == 0 {
		pc.TimeoutSeconds = defaultTimeoutSeconds
	}
	if pc.MaxRetries == nil {
		retries := defaultMaxRetries
		pc.MaxRetries = &retries
	}
	if pc.MaxFailures == nil {
		failures := defaultMaxFailures
		pc.MaxFailures = &failures
	}
}

func defaultAPIKeyEnv(provider string) string {
	if provider == ProviderGemini {
		return "GEMINI_API_KEY"
	}
	return "OPENAI_API_KEY"
}
