package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, an optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SCREENGLIDE_CONFIG is set
//  3. env (prefix SCREENGLIDE_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SCREENGLIDE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: SCREENGLIDE_CURSOR_SIZE, SCREENGLIDE_ZOOM.LEVEL, ...
	// Keys are lowercased with the prefix stripped; underscores are kept to
	// match the koanf tags on the struct.
	envProvider := env.Provider("SCREENGLIDE_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "screenglide_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.SmoothingTau <= 0 {
		return nil, errors.New("smoothing_tau must be positive")
	}
	if cfg.PulseMinScale <= 0 || cfg.PulseMinScale > 1 {
		return nil, errors.New("pulse_min_scale must be in (0, 1]")
	}
	return &cfg, nil
}
