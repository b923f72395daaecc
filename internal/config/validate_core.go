package config

import (
	"fmt"

	"lexeval/internal/spec"
)

// Validate checks a config for correctness and referenced files.
func Validate(cfg *spec.Config, baseDir string) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if baseDir == "" {
		baseDir = "."
	}

	validateSuite(cfg.Suite, baseDir, collector.add)
	validateProvider("candidate", cfg.Candidate, collector.add)
	validateJudge(cfg.Judge, collector.add)
	if cfg.Concurrency < 1 {
		collector.add("concurrency", "must be >= 1")
	}
	validateRateLimiter(cfg.RateLimiter, collector.add)

	return collector.result()
}
