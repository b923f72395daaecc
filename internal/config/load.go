package config

import (
	"fmt"
	"os"

	"lexeval/internal/spec"
)

// Load reads a config file, fills defaults and validates it against the
// project root that owns the file. Validation failures come back as a
// *ValidationError.
func Load(path string) (spec.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return spec.Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := spec.ParseConfig(data)
	if err != nil {
		return spec.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	Normalize(&cfg)
	if err := Validate(&cfg, RootFromConfigPath(path)); err != nil {
		return spec.Config{}, err
	}
	return cfg, nil
}
