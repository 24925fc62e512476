package prep

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
)

// FeatureEngine runs an ordered list of derivation stages over a
// train/test partition pair. Both partitions get the same formulas;
// any aggregate a stage computes comes from that partition's own rows,
// so no test-set statistic ever reaches the training partition or vice
// versa.
type FeatureEngine struct {
	stages []Stage
	logger *slog.Logger
}

// NewFeatureEngine validates the stage list against the raw feature
// schema and returns the engine. A stage whose input no raw column or
// earlier stage provides is rejected here, before any data is touched.
func NewFeatureEngine(schema []string, stages []Stage, logger *slog.Logger) (*FeatureEngine, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := validateStages(schema, stages); err != nil {
		return nil, err
	}
	return &FeatureEngine{stages: stages, logger: logger}, nil
}

// GenerateFeatures applies every stage to both partitions in order.
// The two partitions are processed concurrently per stage; this is
// safe because their backing storage is never shared. A failing stage
// leaves the columns of completed stages intact. After the last stage
// every generated value that is infinite or NaN is replaced with 0, so
// final features are always finite.
func (e *FeatureEngine) GenerateFeatures(ctx context.Context, train, test *Partition) error {
	if train == nil || train.Features == nil || test == nil || test.Features == nil {
		return ErrUninitializedPartition
	}

	for _, stage := range e.stages {
		start := time.Now()

		g, _ := errgroup.WithContext(ctx)
		for _, p := range []*Partition{train, test} {
			g.Go(func() error { return stage.Apply(p) })
		}
		if err := g.Wait(); err != nil {
			return fmt.Errorf("stage %q: %w", stage.Name(), err)
		}

		e.logger.Debug("feature stage applied",
			slog.String("stage", stage.Name()),
			slog.Int("train_rows", train.NumRows()),
			slog.Int("test_rows", test.NumRows()),
			slog.Duration("elapsed", time.Since(start)))
	}

	for _, p := range []*Partition{train, test} {
		e.sanitize(p)
	}
	return nil
}

// sanitize zeroes non-finite values in every generated column.
func (e *FeatureEngine) sanitize(p *Partition) {
	for _, stage := range e.stages {
		for _, name := range stage.Outputs() {
			col, ok := p.Features.Column(name)
			if !ok || col.Floats == nil {
				continue
			}
			for i, v := range col.Floats {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					col.Floats[i] = 0
				}
			}
		}
	}
}
