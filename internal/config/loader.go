package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r on top of [Default] values and
// validates the result. Useful in tests where configs are constructed from
// string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	if cfg.Matching.MinSimilarity < 0 || cfg.Matching.MinSimilarity > 1 {
		errs = append(errs, fmt.Errorf("matching.min_similarity %.2f is out of range [0, 1]", cfg.Matching.MinSimilarity))
	}
	if cfg.Matching.MinWordLength < 1 {
		errs = append(errs, fmt.Errorf("matching.min_word_length %d must be at least 1", cfg.Matching.MinWordLength))
	}

	if cfg.Diff.SplitMinLength < 1 {
		errs = append(errs, fmt.Errorf("diff.split_min_length %d must be at least 1", cfg.Diff.SplitMinLength))
	}
	if cfg.Diff.SplitSimilarity < 0 || cfg.Diff.SplitSimilarity > 1 {
		errs = append(errs, fmt.Errorf("diff.split_similarity %.2f is out of range [0, 1]", cfg.Diff.SplitSimilarity))
	}

	if cfg.Learned.Backend != "" && !cfg.Learned.Backend.IsValid() {
		errs = append(errs, fmt.Errorf("learned.backend %q is invalid; valid values: file, postgres", cfg.Learned.Backend))
	}
	if cfg.Learned.Backend == BackendFile && cfg.Learned.Path == "" {
		errs = append(errs, errors.New("learned.path is required when learned.backend is file"))
	}
	if cfg.Learned.Backend == BackendPostgres && cfg.Learned.PostgresDSN == "" {
		errs = append(errs, errors.New("learned.postgres_dsn is required when learned.backend is postgres"))
	}
	if cfg.Learned.MinScore < 0 || cfg.Learned.MinScore > 1 {
		errs = append(errs, fmt.Errorf("learned.min_score %.2f is out of range [0, 1]", cfg.Learned.MinScore))
	}

	if cfg.Catalog.Path == "" {
		slog.Warn("catalog.path is empty; only learned corrections will be suggested")
	}

	return errors.Join(errs...)
}

// SlogLevel maps the configured level onto its [slog.Level]. Unset or
// unrecognised levels map to info.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
