package config

import (
	"fmt"
	"sort"

	"lexeval/internal/spec"
)

func validateProvider(prefix string, pc spec.ProviderConfig, add issueAdder) {
	switch pc.Provider {
	case ProviderOpenAI, ProviderGemini:
	case "":
		add(prefix+".provider", "is required")
	default:
		add(prefix+".provider", fmt.Sprintf("unsupported provider %q", pc.Provider))
	}
	if pc.TimeoutSeconds < 0 {
		add(prefix+".timeout_seconds", "must be >= 0")
	}
	if spec.IntOr(pc.MaxRetries, 0) < 0 {
		add(prefix+".max_retries", "must be >= 0")
	}
	if spec.IntOr(pc.MaxFailures, 0) < 0 {
		add(prefix+".max_failures", "must be >= 0")
	}
	if pc.Temperature < 0 || pc.Temperature > 2 {
		add(prefix+".temperature", "must be between 0 and 2")
	}
}

func validateJudge(judge spec.JudgeConfig, add issueAdder) {
	validateProvider("judge", judge.ProviderConfig, add)
	if judge.FuzzyThreshold <= 0 || judge.FuzzyThreshold > 1 {
		add("judge.fuzzy_threshold", "must be in (0, 1]")
	}

	variants := make([]string, 0, len(judge.Variants))
	for variant := range judge.Variants {
		variants = append(variants, variant)
	}
	sort.Strings(variants)

	needsModel := false
	for _, variant := range variants {
		field := "judge.variants." + variant
		if _, ok := defaultRubrics[variant]; !ok {
			add(field, fmt.Sprintf("unknown variant %q", variant))
			continue
		}
		vc := judge.Variants[variant]
		switch vc.Mode {
		case ModeModel:
			needsModel = true
			if vc.Rubric != RubricDefinition && vc.Rubric != RubricUsage {
				add(field+".rubric", fmt.Sprintf("unsupported rubric %q", vc.Rubric))
			}
		case ModeExact, ModeFuzzy:
		default:
			add(field+".mode", fmt.Sprintf("unsupported mode %q", vc.Mode))
		}
	}
	if needsModel && judge.Model == "" {
		add("judge.model", "is required when a variant uses model mode")
	}
}
