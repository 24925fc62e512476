package prep

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/LeoSousa155/DataScience/pkg/frame"
)

// Config fixes the tunable surface of a pipeline: the split, the
// missing-value policy, the z-score outlier threshold (zero disables
// outlier removal), and the ordered derivation stages.
type Config struct {
	Split SplitSpec

	// MissingValues selects the fill/drop policy. FillConstant is the
	// value used with StrategyConstant.
	MissingValues Strategy
	FillConstant  float64

	// OutlierThreshold is the absolute z-score above which a training
	// row is removed. Zero or negative disables removal.
	OutlierThreshold float64

	// Stages defaults to DefaultStages when nil.
	Stages []Stage

	// Logger receives stage events; nil discards them.
	Logger *slog.Logger
}

// Pipeline wires Splitter, Cleaner, and FeatureEngine in fixed order.
// Cleaning runs before feature derivation because the derived
// statistics are sensitive to duplicates and missing values.
type Pipeline struct {
	cfg    Config
	logger *slog.Logger
}

// NewPipeline creates a pipeline from the given configuration.
func NewPipeline(cfg Config) *Pipeline {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Stages == nil {
		cfg.Stages = DefaultStages()
	}
	if cfg.MissingValues == "" {
		cfg.MissingValues = StrategyDrop
	}
	return &Pipeline{cfg: cfg, logger: cfg.Logger}
}

// Build runs split, clean, and feature derivation over the raw dataset
// and returns the two finished partitions. The raw frame is never
// mutated, and nothing is persisted or displayed here; the caller owns
// the partitions. On error the caller learns which stage failed and
// with what input; the pipeline never retries.
func (pl *Pipeline) Build(ctx context.Context, raw *frame.Frame) (train, test *Partition, err error) {
	// Validate the stage list against the post-split schema before any
	// work, so a bad stage list fails here rather than mid-run.
	schema := make([]string, 0, raw.NumCols())
	for _, name := range raw.Names() {
		if name != pl.cfg.Split.TargetColumn {
			schema = append(schema, name)
		}
	}
	engine, err := NewFeatureEngine(schema, pl.cfg.Stages, pl.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("pipeline: %w", err)
	}

	start := time.Now()
	train, test, err = Split(raw, pl.cfg.Split)
	if err != nil {
		return nil, nil, fmt.Errorf("pipeline: split: %w", err)
	}
	pl.logger.Info("dataset split",
		slog.Int("train_rows", train.NumRows()),
		slog.Int("test_rows", test.NumRows()),
		slog.Duration("elapsed", time.Since(start)))

	start = time.Now()
	cleaner := NewCleaner(train, test, pl.logger)
	if err := cleaner.RemoveDuplicateRows(); err != nil {
		return nil, nil, fmt.Errorf("pipeline: clean: %w", err)
	}
	if err := cleaner.HandleMissingValues(pl.cfg.MissingValues, pl.cfg.FillConstant); err != nil {
		return nil, nil, fmt.Errorf("pipeline: clean: %w", err)
	}
	if pl.cfg.OutlierThreshold > 0 {
		if err := cleaner.RemoveOutliers(pl.cfg.OutlierThreshold); err != nil {
			return nil, nil, fmt.Errorf("pipeline: clean: %w", err)
		}
	}
	pl.logger.Info("partitions cleaned",
		slog.Int("train_rows", train.NumRows()),
		slog.Int("test_rows", test.NumRows()),
		slog.Duration("elapsed", time.Since(start)))

	start = time.Now()
	if err := engine.GenerateFeatures(ctx, train, test); err != nil {
		return nil, nil, fmt.Errorf("pipeline: features: %w", err)
	}
	pl.logger.Info("features generated",
		slog.Int("columns", train.Features.NumCols()),
		slog.Duration("elapsed", time.Since(start)))

	return train, test, nil
}
