package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/ashishact/ramblefix/internal/analyze"
	"github.com/ashishact/ramblefix/internal/config"
	"github.com/ashishact/ramblefix/internal/entity"
	"github.com/ashishact/ramblefix/internal/learn"
	"github.com/ashishact/ramblefix/internal/observe"
	"github.com/ashishact/ramblefix/internal/resilience"
	"github.com/ashishact/ramblefix/internal/review"
	"github.com/ashishact/ramblefix/internal/worddiff"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := &commandContext{configFlag: &configFlag}

	rootCmd := &cobra.Command{
		Use:           "ramblefix",
		Short:         "Correct entity names in speech-to-text transcripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newAnalyzeCommand(ctx))
	rootCmd.AddCommand(newDiffCommand(ctx))
	rootCmd.AddCommand(newCatalogCommand(ctx))

	return rootCmd
}

// defaultConfigPath is used when --config is not given; a missing file at the
// default path falls back to built-in defaults instead of erroring.
const defaultConfigPath = "ramblefix.yaml"

// commandContext carries lazily-initialised shared state between commands.
type commandContext struct {
	configFlag *string
	cfg        *config.Config
}

// initMetricsOnce guards global meter provider setup; the provider lives for
// the rest of the process, so its shutdown is left to process exit.
var initMetricsOnce sync.Once

// ensureConfig loads and caches the configuration, installs the default
// logger at the configured level and sets up the global meter provider.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}

	initMetricsOnce.Do(func() {
		if _, err := observe.InitProvider(context.Background(), observe.ProviderConfig{}); err != nil {
			slog.Warn("metrics disabled", "error", err)
		}
	})

	path := *c.configFlag
	if path == "" {
		path = defaultConfigPath
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			c.cfg = config.Default()
			slog.SetDefault(newLogger(c.cfg.LogLevel))
			return c.cfg, nil
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	slog.SetDefault(newLogger(cfg.LogLevel))
	return cfg, nil
}

// openLearnStore builds the configured learn store. The returned close
// function is a no-op for the file backend.
func (c *commandContext) openLearnStore(ctx context.Context) (learn.Store, func(), error) {
	switch c.cfg.Learned.Backend {
	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, c.cfg.Learned.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		store := learn.NewPostgresStore(pool)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		if fp := c.cfg.Learned.FallbackPath; fp != "" {
			fallback := learn.NewFallbackStore(store, learn.NewFileStore(fp), resilience.FallbackConfig{})
			return fallback, pool.Close, nil
		}
		return store, pool.Close, nil
	default:
		return learn.NewFileStore(c.cfg.Learned.Path), func() {}, nil
	}
}

// loadCatalog reads the configured catalog file into an in-memory entity
// store and lists it back out, so ID collisions surface at load time. An
// unset path yields an empty catalog.
func (c *commandContext) loadCatalog(ctx context.Context) ([]entity.Record, error) {
	if c.cfg.Catalog.Path == "" {
		return nil, nil
	}
	cf, err := entity.LoadCatalogFile(c.cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	store := entity.NewMemStore()
	if _, err := entity.ImportCatalog(ctx, store, cf); err != nil {
		return nil, err
	}
	return store.List(ctx, entity.ListOptions{})
}

// newReviewer builds the review workflow over the given learn store, with
// the configured replay score floor.
func (c *commandContext) newReviewer(store learn.Store) *review.Reviewer {
	return review.New(c.newAnalyzer(), c.newDiffer(), store, nil,
		review.WithMinScore(c.cfg.Learned.MinScore))
}

// newAnalyzer builds an analyzer from the configured thresholds.
func (c *commandContext) newAnalyzer() *analyze.Analyzer {
	return analyze.New(
		analyze.WithMinSimilarity(c.cfg.Matching.MinSimilarity),
		analyze.WithMinWordLength(c.cfg.Matching.MinWordLength),
	)
}

// newDiffer builds a differ from the configured thresholds.
func (c *commandContext) newDiffer() *worddiff.Differ {
	return worddiff.New(
		worddiff.WithSplitMinLength(c.cfg.Diff.SplitMinLength),
		worddiff.WithSplitSimilarity(c.cfg.Diff.SplitSimilarity),
	)
}

func newLogger(level config.LogLevel) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level.SlogLevel(),
	}))
}
