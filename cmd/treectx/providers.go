package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hayeah/treectx"
	"github.com/hayeah/treectx/internal/config"
	"github.com/hayeah/treectx/internal/logutil"
	"github.com/hayeah/treectx/internal/metrics"
	"github.com/hayeah/treectx/internal/project"
	"github.com/hayeah/treectx/internal/selection"
	"github.com/hayeah/treectx/internal/treefs"
)

// ProvideLogger builds the application logger at the configured level.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	return logutil.NewLogger(cfg.LogLevel)
}

// ProvideFS builds the tree filesystem, filtered through gitignore rules
// when the config asks for it.
func ProvideFS(cfg *config.Config, root string) (treefs.FS, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", root)
	}
	if !cfg.RespectGitignore {
		return treefs.OS{}, nil
	}
	return treefs.NewFiltered(treefs.OS{}, root)
}

// ProvideCache constructs the engine's directory-state cache.
func ProvideCache() selection.StateCache {
	return selection.NewMapCache()
}

// ProvideEngine constructs the selection engine rooted at root.
func ProvideEngine(fsys treefs.FS, root string, cache selection.StateCache, logger *zap.Logger) *selection.Engine {
	return selection.NewEngine(fsys, root, cache, logger)
}

// ProvideCounter picks the token counter for the breakdown report. The
// --token-estimator flag overrides the configured default, and tiktoken
// falls back to the simple counter when the model is unknown.
func ProvideCounter(cfg *config.Config, args OutCmd) metrics.Counter {
	estimator := cfg.TokenEstimator
	if args.TokenEstimator != "" {
		estimator = args.TokenEstimator
	}
	if estimator == "tiktoken" {
		if c, err := metrics.NewTiktokenCounter(cfg.TiktokenModel); err == nil {
			return c
		}
	}
	return &metrics.SimpleCounter{}
}

// ProvideMetrics constructs OutputMetrics with the given counter.
func ProvideMetrics(counter metrics.Counter) *metrics.OutputMetrics {
	return metrics.NewOutputMetrics(counter)
}

// ProvideAggregator builds the aggregator the picker uses for dry-runs.
func ProvideAggregator(fsys treefs.FS, engine *selection.Engine, logger *zap.Logger) *treectx.Aggregator {
	return treectx.NewAggregator(fsys, engine, logger)
}

// ProvideMeteredAggregator builds the aggregator with a metrics sink for
// the out command's reports.
func ProvideMeteredAggregator(fsys treefs.FS, engine *selection.Engine, logger *zap.Logger, m *metrics.OutputMetrics) *treectx.Aggregator {
	agg := treectx.NewAggregator(fsys, engine, logger)
	agg.Metrics = m
	return agg
}

// ProvideProjectStore opens the saved-projects document.
func ProvideProjectStore(cfg *config.Config, logger *zap.Logger) *project.Store {
	return project.NewStore(cfg.ProjectsFile, logger)
}
