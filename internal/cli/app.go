package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"lexeval/internal/config"
	"lexeval/internal/judge"
	"lexeval/internal/logging"
	"lexeval/internal/provider"
	"lexeval/internal/ratelimit"
	"lexeval/internal/spec"
	"lexeval/internal/store"
	"lexeval/internal/suite"
	"lexeval/pkg/ratelimiter"
)

// app holds global flags and shared state for one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    bool
	noColor    bool
	logPath    string

	logger *zap.Logger
	sched  *ratelimiter.Scheduler
}

func (a *app) openLogger() error {
	if a.logger != nil {
		return nil
	}
	logger, err := logging.New(logging.Options{Verbose: a.verbose, Path: a.logPath})
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func (a *app) close() {
	if a.sched != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.sched.Shutdown(ctx); err != nil {
			a.log().Warn("rate limiter shutdown", zap.Error(err))
		}
		cancel()
		a.sched = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) log() *zap.Logger {
	return logging.OrNop(a.logger)
}

// project is a loaded config plus its suite.
type project struct {
	configPath string
	root       string
	cfg        spec.Config
	suite      suite.Suite
}

// path resolves a configured path against the project root.
func (p *project) path(value string) string {
	return config.ResolvePath(p.root, value)
}

func (p *project) store() *store.Store {
	return store.New(p.path(p.cfg.Output.ResponsesDir))
}

// loadConfig resolves and loads the config without reading the suite.
func (a *app) loadConfig() (*project, error) {
	configPath := a.configPath
	if strings.TrimSpace(configPath) == "" {
		found, err := config.FindConfigPath("")
		if err != nil {
			return nil, err
		}
		configPath = found
	} else if abs, err := filepath.Abs(configPath); err == nil {
		configPath = abs
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return &project{
		configPath: configPath,
		root:       config.RootFromConfigPath(configPath),
		cfg:        cfg,
	}, nil
}

// loadProject loads the config and the suite it points at.
func (a *app) loadProject() (*project, error) {
	p, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	s, err := suite.Load(suite.Paths{
		Vocabulary: p.path(p.cfg.Suite.Vocabulary),
		Prompts:    p.path(p.cfg.Suite.Prompts),
		Models:     p.path(p.cfg.Suite.Models),
	})
	if err != nil {
		return nil, err
	}
	p.suite = s
	a.log().Debug("project loaded",
		zap.String("config", p.configPath),
		zap.Strings("models", s.Models),
		zap.Int("words", len(s.Vocabulary)),
	)
	return p, nil
}

// candidate builds the completer for the models under evaluation.
func (a *app) candidate(ctx context.Context, p *project) (provider.Completer, error) {
	throttle, err := a.throttle(p, p.cfg.Candidate.Provider)
	if err != nil {
		return nil, err
	}
	completer, err := provider.FromConfig(ctx, p.cfg.Candidate, a.log(), nil, throttle)
	if err != nil {
		return nil, fmt.Errorf("candidate provider: %w", err)
	}
	return completer, nil
}

// judgeRules converts configured variant modes into judge rules.
func judgeRules(cfg spec.JudgeConfig) map[suite.Variant]judge.VariantRule {
	rules := make(map[suite.Variant]judge.VariantRule, len(cfg.Variants))
	for name, vc := range cfg.Variants {
		rules[suite.Variant(name)] = judge.VariantRule{Mode: judge.Mode(vc.Mode), Rubric: vc.Rubric}
	}
	return rules
}

// judge builds the judge. A judge model client is only created when some
// variant is scored in model mode.
func (a *app) judge(ctx context.Context, p *project) (*judge.Judge, error) {
	rules := judgeRules(p.cfg.Judge)
	opts := judge.Options{
		Model:          p.cfg.Judge.Model,
		FuzzyThreshold: p.cfg.Judge.FuzzyThreshold,
		Rules:          rules,
		Logger:         a.log(),
	}
	if judge.NeedsModel(rules) {
		throttle, err := a.throttle(p, p.cfg.Judge.Provider)
		if err != nil {
			return nil, err
		}
		completer, err := provider.FromConfig(ctx, p.cfg.Judge.ProviderConfig, a.log(), nil, throttle)
		if err != nil {
			return nil, fmt.Errorf("judge provider: %w", err)
		}
		opts.Completer = completer
	}
	return judge.New(opts)
}

// throttle returns the rate limit middleware for providerName, starting the
// shared scheduler on first use. It is nil when the limiter is disabled.
func (a *app) throttle(p *project, providerName string) (provider.Middleware, error) {
	if a.sched == nil {
		sched, err := ratelimit.NewScheduler(p.cfg.RateLimiter, a.log())
		if err != nil {
			return nil, err
		}
		a.sched = sched
	}
	return ratelimit.Throttle(a.sched, providerName, p.cfg.RateLimiter.MaxOutputTokens), nil
}
