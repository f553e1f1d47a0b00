package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if SCOREKEEP_CONFIG is set
//  3. env (prefix SCOREKEEP_)
func Load(_ context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SCOREKEEP_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SCOREKEEP_SNAPSHOT, SCOREKEEP_SURVIVAL_CAP, ...
	// Map env keys like SCOREKEEP_SURVIVAL_CAP -> survival_cap (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SCOREKEEP_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "scorekeep_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	if cfg.Snapshot == "" {
		return nil, fmt.Errorf("%w: snapshot path must not be empty", ErrInvalidConfig)
	}
	if cfg.SurvivalCap < 0 {
		return nil, fmt.Errorf("%w: survival_cap must not be negative", ErrInvalidConfig)
	}
	return &cfg, nil
}
