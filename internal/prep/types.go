// Package prep implements the partitioned data-preparation core:
// splitting a raw trip table into independent train/test partitions,
// cleaning both partitions without mixing their distributions, and
// deriving engineered feature columns with partition-local statistics.
package prep

import (
	"github.com/LeoSousa155/DataScience/pkg/frame"
)

// Well-known trip record columns. The raw table carries the first
// three; the rest are produced by the feature stages.
const (
	ColPickupSeconds  = "pickup_time_in_seconds"
	ColDropoffSeconds = "dropoff_time_in_seconds"
	ColTripDistance   = "trip_distance"

	ColTripDuration    = "trip_duration_min"
	ColAverageSpeed    = "average_speed_mph"
	ColPickupHour      = "pickup_hour"
	ColPickupDayOfWeek = "pickup_day_of_week"
)

// Partition is a row-aligned pair of feature table and label vector.
// Features.NumRows() == len(Labels) holds after every operation, and
// the target column never appears inside Features.
type Partition struct {
	Features *frame.Frame
	Labels   []float64
}

// NumRows returns the partition's row count.
func (p *Partition) NumRows() int {
	if p == nil || p.Features == nil {
		return 0
	}
	return p.Features.NumRows()
}

// selectRows reduces the partition to the rows at the given indices,
// keeping features and labels aligned.
func (p *Partition) selectRows(indices []int) {
	p.Features = p.Features.Select(indices)
	labels := make([]float64, len(indices))
	for i, idx := range indices {
		labels[i] = p.Labels[idx]
	}
	p.Labels = labels
}

// SplitSpec configures the train/test split. It is fixed at pipeline
// construction and immutable afterwards.
type SplitSpec struct {
	// TargetColumn names the label column; it is removed from the
	// feature table before splitting.
	TargetColumn string
	// TestFraction is the proportion of rows assigned to the test
	// partition, strictly between 0 and 1.
	TestFraction float64
	// Seed makes the shuffle deterministic when non-nil.
	Seed *int64
}

// Strategy is a missing-value policy.
type Strategy string

const (
	StrategyMean         Strategy = "mean"
	StrategyMedian       Strategy = "median"
	StrategyMostFrequent Strategy = "most_frequent"
	StrategyConstant     Strategy = "constant"
	StrategyDrop         Strategy = "drop"
)
