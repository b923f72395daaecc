package spec

// Config is the parsed .lexeval/config.yml document.
type Config struct {
	Version     int            `yaml:"version"`
	Suite       SuiteConfig    `yaml:"suite"`
	Output      OutputConfig   `yaml:"output"`
	Candidate   ProviderConfig `yaml:"candidate"`
	Judge       JudgeConfig    `yaml:"judge"`
	Concurrency int            `yaml:"concurrency"`
	Index       IndexConfig    `yaml:"index"`

	RateLimiter RateLimiterConfig `yaml:"rate_limiter"`
}

// SuiteConfig points at the static suite files.
type SuiteConfig struct {
	Vocabulary string `yaml:"vocabulary"`
	Prompts    string `yaml:"prompts"`
	Models     string `yaml:"models"`
}

type OutputConfig struct {
	ResponsesDir string `yaml:"responses_dir"`
	SummaryPath  string `yaml:"summary_path"`
	ReportPath   string `yaml:"report_path"`
}

// ProviderConfig describes how to reach a completion API.
type ProviderConfig struct {
	Provider       string  `yaml:"provider"`
	Model          string  `yaml:"model"`
	BaseURL        string  `yaml:"base_url"`
	APIKeyEnv      string  `yaml:"api_key_env"`
	Temperature    float64 `yaml:"temperature"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`

	// Nil means unset; an explicit 0 disables retries or the failure guard.
	MaxRetries  *int `yaml:"max_retries"`
	MaxFailures *int `yaml:"max_failures"`
}

type JudgeConfig struct {
	ProviderConfig `yaml:",inline"`
	FuzzyThreshold float64                  `yaml:"fuzzy_threshold"`
	Variants       map[string]VariantConfig `yaml:"variants"`
}

// VariantConfig selects the scoring mode for one prompt variant.
type VariantConfig struct {
	Mode   string `yaml:"mode"`
	Rubric string `yaml:"rubric"`
}

// IntOr returns *p, or fallback when p is nil.
func IntOr(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

type IndexConfig struct {
	Path string `yaml:"path"`
}

// RateLimiterConfig throttles candidate and judge calls per provider/model.
type RateLimiterConfig struct {
	Mode               string        `yaml:"mode"`
	Workers            int           `yaml:"workers"`
	MaxOutputTokens    uint64        `yaml:"max_output_tokens"`
	HoldTimeoutSeconds int           `yaml:"hold_timeout_seconds"`
	Limits             []LimitConfig `yaml:"limits"`
}

// LimitConfig caps one provider/model pair. Zero values are unlimited.
type LimitConfig struct {
	Provider          string `yaml:"provider"`
	Model             string `yaml:"model"`
	RequestsPerMinute uint64 `yaml:"requests_per_minute"`
	TokensPerMinute   uint64 `yaml:"tokens_per_minute"`
	Concurrency       uint64 `yaml:"concurrency"`
}
