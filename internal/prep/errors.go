package prep

import "errors"

var (
	// ErrInvalidSplitSpec reports a bad test fraction or a target
	// column absent from the dataset.
	ErrInvalidSplitSpec = errors.New("invalid split spec")

	// ErrUninitializedPartition reports an operation attempted before
	// a split produced both partitions.
	ErrUninitializedPartition = errors.New("partition not initialized")

	// ErrInvalidStrategy reports an unknown missing-value policy.
	ErrInvalidStrategy = errors.New("invalid missing-value strategy")

	// ErrMissingColumn reports a feature stage prerequisite column
	// absent from the partition.
	ErrMissingColumn = errors.New("missing column")
)
