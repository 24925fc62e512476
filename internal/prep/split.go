package prep

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/LeoSousa155/DataScience/pkg/frame"
)

// Split divides the dataset into a training and a test partition.
//
// The target column is separated from the feature columns first, then
// one seeded permutation assigns rows to the two partitions, moving
// features and labels together. The test partition receives
// round(n*fraction) rows, nearest with ties to even. The partitions
// are row-disjoint, together reconstruct the source exactly once, and
// own copied storage; the source frame is never mutated.
func Split(ds *frame.Frame, spec SplitSpec) (train, test *Partition, err error) {
	if spec.TestFraction <= 0 || spec.TestFraction >= 1 {
		return nil, nil, fmt.Errorf("%w: test fraction %v not in (0,1)", ErrInvalidSplitSpec, spec.TestFraction)
	}
	target, ok := ds.Column(spec.TargetColumn)
	if !ok {
		return nil, nil, fmt.Errorf("%w: target column %q not found", ErrInvalidSplitSpec, spec.TargetColumn)
	}
	if !target.IsNumeric() {
		return nil, nil, fmt.Errorf("%w: target column %q is not numeric", ErrInvalidSplitSpec, spec.TargetColumn)
	}

	n := ds.NumRows()
	labels := make([]float64, n)
	for i := 0; i < n; i++ {
		labels[i] = target.Float(i)
	}

	features := ds.Clone()
	features.Drop(spec.TargetColumn)

	var seed int64
	if spec.Seed != nil {
		seed = *spec.Seed
	} else {
		seed = time.Now().UnixNano()
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)

	nTest := int(math.RoundToEven(float64(n) * spec.TestFraction))
	testIdx := perm[:nTest]
	trainIdx := perm[nTest:]

	train = &Partition{Features: features.Select(trainIdx), Labels: takeFloats(labels, trainIdx)}
	test = &Partition{Features: features.Select(testIdx), Labels: takeFloats(labels, testIdx)}
	return train, test, nil
}

func takeFloats(x []float64, indices []int) []float64 {
	out := make([]float64, len(indices))
	for i, idx := range indices {
		out[i] = x[idx]
	}
	return out
}
