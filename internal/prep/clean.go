package prep

import (
	"fmt"
	"log/slog"

	"github.com/LeoSousa155/DataScience/pkg/frame"
)

// Cleaner applies sanitation to an existing partition pair. Every
// operation keeps each partition's features and labels row-aligned.
// Fill statistics are always computed per partition, so the training
// distribution never reaches test rows and vice versa.
type Cleaner struct {
	train  *Partition
	test   *Partition
	logger *slog.Logger
}

// NewCleaner wraps the two partitions produced by Split. A nil logger
// discards diagnostics.
func NewCleaner(train, test *Partition, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Cleaner{train: train, test: test, logger: logger}
}

func (c *Cleaner) ensureSplit() error {
	if c.train == nil || c.train.Features == nil {
		return fmt.Errorf("%w: train", ErrUninitializedPartition)
	}
	if c.test == nil || c.test.Features == nil {
		return fmt.Errorf("%w: test", ErrUninitializedPartition)
	}
	return nil
}

// RemoveDuplicateRows drops duplicate feature rows from the training
// partition, keeping the first occurrence and re-aligning the training
// labels. The test partition is never deduplicated so that evaluation
// keeps its real-world distribution. Running it twice removes nothing
// the second time.
func (c *Cleaner) RemoveDuplicateRows() error {
	if err := c.ensureSplit(); err != nil {
		return err
	}

	seen := make(map[string]struct{}, c.train.NumRows())
	var kept []int
	for i := 0; i < c.train.NumRows(); i++ {
		key := c.train.Features.RowKey(i)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, i)
	}

	removed := c.train.NumRows() - len(kept)
	if removed > 0 {
		c.train.selectRows(kept)
	}
	c.logger.Debug("removed duplicate rows",
		slog.Int("removed", removed),
		slog.Int("train_rows", c.train.NumRows()))
	return nil
}

// HandleMissingValues fills or drops missing feature values using the
// given strategy. Mean and median fill numeric columns; most_frequent
// also fills categorical columns; constant fills numeric columns with
// the supplied value and categorical columns with "unknown"; drop
// removes rows with any missing value from each partition, re-aligning
// that partition's labels. Each partition's fill values come from its
// own non-missing rows.
func (c *Cleaner) HandleMissingValues(strategy Strategy, constant float64) error {
	if err := c.ensureSplit(); err != nil {
		return err
	}
	switch strategy {
	case StrategyMean, StrategyMedian, StrategyMostFrequent, StrategyConstant, StrategyDrop:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStrategy, strategy)
	}

	if !c.train.Features.HasMissing() && !c.test.Features.HasMissing() {
		c.logger.Debug("no missing values found")
		return nil
	}

	for _, p := range []*Partition{c.train, c.test} {
		if strategy == StrategyDrop {
			dropMissingRows(p)
			continue
		}
		fillMissing(p.Features, strategy, constant)
	}

	c.logger.Debug("handled missing values",
		slog.String("strategy", string(strategy)),
		slog.Int("train_rows", c.train.NumRows()),
		slog.Int("test_rows", c.test.NumRows()))
	return nil
}

// DetectOutliers returns the training rows whose z-score exceeds the
// threshold in absolute value on at least one numeric column. The
// z-scores use the training partition's own mean and standard
// deviation.
func (c *Cleaner) DetectOutliers(threshold float64) ([]int, error) {
	if err := c.ensureSplit(); err != nil {
		return nil, err
	}

	outlier := make([]bool, c.train.NumRows())
	for _, name := range c.train.Features.NumericNames() {
		col, _ := c.train.Features.Column(name)
		vals := make([]float64, col.Len())
		for i := range vals {
			vals[i] = col.Float(i)
		}
		m, s := mean(vals), std(vals)
		if s == 0 {
			continue
		}
		for i, v := range vals {
			if z := (v - m) / s; z > threshold || z < -threshold {
				outlier[i] = true
			}
		}
	}

	var rows []int
	for i, bad := range outlier {
		if bad {
			rows = append(rows, i)
		}
	}
	return rows, nil
}

// RemoveOutliers deletes the rows reported by DetectOutliers from the
// training partition only, re-aligning the training labels. Evaluation
// rows are intentionally left untouched.
func (c *Cleaner) RemoveOutliers(threshold float64) error {
	rows, err := c.DetectOutliers(threshold)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		c.logger.Debug("no outliers detected", slog.Float64("threshold", threshold))
		return nil
	}

	drop := make(map[int]struct{}, len(rows))
	for _, r := range rows {
		drop[r] = struct{}{}
	}
	kept := make([]int, 0, c.train.NumRows()-len(rows))
	for i := 0; i < c.train.NumRows(); i++ {
		if _, bad := drop[i]; !bad {
			kept = append(kept, i)
		}
	}
	c.train.selectRows(kept)

	c.logger.Debug("removed outliers",
		slog.Float64("threshold", threshold),
		slog.Int("removed", len(rows)),
		slog.Int("train_rows", c.train.NumRows()))
	return nil
}

func dropMissingRows(p *Partition) {
	missing := make(map[int]struct{})
	for _, r := range p.Features.MissingRows() {
		missing[r] = struct{}{}
	}
	if len(missing) == 0 {
		return
	}
	kept := make([]int, 0, p.NumRows()-len(missing))
	for i := 0; i < p.NumRows(); i++ {
		if _, bad := missing[i]; !bad {
			kept = append(kept, i)
		}
	}
	p.selectRows(kept)
}

func fillMissing(f *frame.Frame, strategy Strategy, constant float64) {
	for _, name := range f.Names() {
		col, _ := f.Column(name)
		switch col.Type {
		case frame.Float64:
			var present []float64
			for i, v := range col.Floats {
				if !col.IsMissing(i) {
					present = append(present, v)
				}
			}
			var fill float64
			switch strategy {
			case StrategyMean:
				fill = mean(present)
			case StrategyMedian:
				fill = median(present)
			case StrategyMostFrequent:
				fill = mostFrequent(present)
			case StrategyConstant:
				fill = constant
			}
			for i := range col.Floats {
				if col.IsMissing(i) {
					col.Floats[i] = fill
				}
			}
		case frame.String:
			// Mean and median have no categorical analogue; those
			// strategies leave string columns untouched.
			var fill string
			switch strategy {
			case StrategyMostFrequent:
				fill = mostFrequentString(col.Strings)
			case StrategyConstant:
				fill = "unknown"
			default:
				continue
			}
			for i := range col.Strings {
				if col.Strings[i] == "" {
					col.Strings[i] = fill
				}
			}
		}
	}
}

func mostFrequentString(x []string) string {
	counts := make(map[string]int, len(x))
	for _, v := range x {
		if v == "" {
			continue
		}
		counts[v]++
	}
	best, bestCount := "", 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best, bestCount = v, c
		}
	}
	if bestCount == 0 {
		// Column is entirely missing.
		return "unknown"
	}
	return best
}
