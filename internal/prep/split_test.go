package prep

import (
	"errors"
	"sort"
	"testing"

	"github.com/LeoSousa155/DataScience/pkg/frame"
)

// tripFrame builds the canonical 10-row trip dataset: pickups at
// minute intervals, dropoffs 300 seconds later, distances 1..10, and
// a fare label of 2.5 per mile.
func tripFrame(t *testing.T) *frame.Frame {
	t.Helper()
	n := 10
	pickup := make([]float64, n)
	dropoff := make([]float64, n)
	distance := make([]float64, n)
	fare := make([]float64, n)
	for i := 0; i < n; i++ {
		pickup[i] = float64(i * 60)
		dropoff[i] = pickup[i] + 300
		distance[i] = float64(i + 1)
		fare[i] = distance[i] * 2.5
	}
	f, err := frame.New(
		frame.NewFloatColumn(ColPickupSeconds, pickup),
		frame.NewFloatColumn(ColDropoffSeconds, dropoff),
		frame.NewFloatColumn(ColTripDistance, distance),
		frame.NewFloatColumn("fare_amount", fare),
	)
	if err != nil {
		t.Fatalf("building trip frame: %v", err)
	}
	return f
}

func seedPtr(v int64) *int64 { return &v }

func spec42() SplitSpec {
	return SplitSpec{TargetColumn: "fare_amount", TestFraction: 0.2, Seed: seedPtr(42)}
}

func TestSplit_DisjointAndComplete(t *testing.T) {
	ds := tripFrame(t)
	train, test, err := Split(ds, spec42())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := train.NumRows() + test.NumRows(); got != ds.NumRows() {
		t.Errorf("rows lost or duplicated: %d train + %d test != %d", train.NumRows(), test.NumRows(), ds.NumRows())
	}
	if train.NumRows() != len(train.Labels) || test.NumRows() != len(test.Labels) {
		t.Error("features and labels misaligned after split")
	}
	if train.Features.HasColumn("fare_amount") || test.Features.HasColumn("fare_amount") {
		t.Error("target column must not appear in features")
	}

	// The union of row keys must equal the source's keys exactly once each.
	var got []string
	for i := 0; i < train.NumRows(); i++ {
		got = append(got, train.Features.RowKey(i))
	}
	for i := 0; i < test.NumRows(); i++ {
		got = append(got, test.Features.RowKey(i))
	}
	featuresOnly := ds.Clone()
	featuresOnly.Drop("fare_amount")
	var want []string
	for i := 0; i < featuresOnly.NumRows(); i++ {
		want = append(want, featuresOnly.RowKey(i))
	}
	sort.Strings(got)
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("row count mismatch: %d vs %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("partition rows do not reconstruct the source at %d: %q vs %q", i, got[i], want[i])
		}
	}
}

func TestSplit_DeterministicWithSeed(t *testing.T) {
	ds := tripFrame(t)

	_, test1, err := Split(ds, spec42())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, test2, err := Split(ds, spec42())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if test1.NumRows() != 2 || test2.NumRows() != 2 {
		t.Fatalf("expected 2 test rows, got %d and %d", test1.NumRows(), test2.NumRows())
	}
	for i := 0; i < 2; i++ {
		if test1.Features.RowKey(i) != test2.Features.RowKey(i) {
			t.Errorf("seeded split not deterministic at row %d", i)
		}
		if test1.Labels[i] != test2.Labels[i] {
			t.Errorf("seeded split labels differ at row %d", i)
		}
	}

	other := spec42()
	other.Seed = seedPtr(43)
	_, test3, err := Split(ds, other)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	same := test1.Features.RowKey(0) == test3.Features.RowKey(0) &&
		test1.Features.RowKey(1) == test3.Features.RowKey(1)
	if same {
		t.Error("different seeds produced identical test sets")
	}
}

func TestSplit_LabelsMoveWithFeatures(t *testing.T) {
	ds := tripFrame(t)
	train, test, err := Split(ds, spec42())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	check := func(p *Partition) {
		dist, _ := p.Features.Column(ColTripDistance)
		for i := 0; i < p.NumRows(); i++ {
			if want := dist.Float(i) * 2.5; p.Labels[i] != want {
				t.Errorf("label %v does not match row distance %v", p.Labels[i], dist.Float(i))
			}
		}
	}
	check(train)
	check(test)
}

func TestSplit_RoundsTiesToEven(t *testing.T) {
	ds := tripFrame(t)
	spec := spec42()
	spec.TestFraction = 0.25 // 2.5 rows rounds to 2, not 3
	_, test, err := Split(ds, spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if test.NumRows() != 2 {
		t.Errorf("expected ties-to-even rounding to give 2 test rows, got %d", test.NumRows())
	}
}

func TestSplit_InvalidSpec(t *testing.T) {
	ds := tripFrame(t)

	for _, frac := range []float64{0, 1, -0.1, 1.5} {
		_, _, err := Split(ds, SplitSpec{TargetColumn: "fare_amount", TestFraction: frac})
		if !errors.Is(err, ErrInvalidSplitSpec) {
			t.Errorf("fraction %v: expected ErrInvalidSplitSpec, got %v", frac, err)
		}
	}

	_, _, err := Split(ds, SplitSpec{TargetColumn: "no_such_column", TestFraction: 0.2})
	if !errors.Is(err, ErrInvalidSplitSpec) {
		t.Errorf("expected ErrInvalidSplitSpec for missing target, got %v", err)
	}
}

func TestSplit_DoesNotMutateSource(t *testing.T) {
	ds := tripFrame(t)
	before := make([]string, ds.NumRows())
	for i := range before {
		before[i] = ds.RowKey(i)
	}

	if _, _, err := Split(ds, spec42()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !ds.HasColumn("fare_amount") {
		t.Fatal("target column removed from source dataset")
	}
	for i := range before {
		if ds.RowKey(i) != before[i] {
			t.Fatalf("source row %d mutated by split", i)
		}
	}
}
