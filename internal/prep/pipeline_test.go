package prep

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/LeoSousa155/DataScience/internal/testutil"
	"github.com/LeoSousa155/DataScience/pkg/frame"
)

func TestPipeline_Build(t *testing.T) {
	// Ten clean rows plus a duplicate of row 0 and a row with a
	// missing distance.
	pickup := []float64{0, 60, 120, 180, 240, 300, 360, 420, 480, 540, 0, 600}
	dropoff := []float64{300, 360, 420, 480, 540, 600, 660, 720, 780, 840, 300, 900}
	distance := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 1, math.NaN()}
	fare := make([]float64, len(pickup))
	for i := range fare {
		fare[i] = 2.5 * distance[i]
	}
	raw, err := frame.New(
		frame.NewFloatColumn(ColPickupSeconds, pickup),
		frame.NewFloatColumn(ColDropoffSeconds, dropoff),
		frame.NewFloatColumn(ColTripDistance, distance),
		frame.NewFloatColumn("fare_amount", fare),
	)
	if err != nil {
		t.Fatalf("building raw frame: %v", err)
	}

	pl := NewPipeline(Config{
		Split:         SplitSpec{TargetColumn: "fare_amount", TestFraction: 0.25, Seed: seedPtr(7)},
		MissingValues: StrategyDrop,
		Logger:        testutil.NewTestLogger(t),
	})

	train, test, err := pl.Build(context.Background(), raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if train.NumRows() != len(train.Labels) || test.NumRows() != len(test.Labels) {
		t.Error("partitions misaligned after full pipeline")
	}
	if train.NumRows() == 0 || test.NumRows() == 0 {
		t.Fatalf("empty partition: train=%d test=%d", train.NumRows(), test.NumRows())
	}

	// All derived columns from the default stages must be present.
	for _, want := range []string{
		ColTripDuration, ColAverageSpeed, ColPickupHour, ColPickupDayOfWeek,
		ColTripDistance + "_mean", ColTripDistance + "_std", ColTripDistance + "_p90",
		ColTripDistance + "_x_" + ColTripDuration,
		ColTripDistance + "_sq", ColTripDistance + "_log",
		ColPickupHour + "_sin", ColPickupHour + "_cos",
		ColPickupDayOfWeek + "_sin", ColPickupDayOfWeek + "_cos",
	} {
		if !train.Features.HasColumn(want) {
			t.Errorf("train missing derived column %q", want)
		}
		if !test.Features.HasColumn(want) {
			t.Errorf("test missing derived column %q", want)
		}
	}

	// Final features are always finite.
	for _, p := range []*Partition{train, test} {
		for _, name := range p.Features.NumericNames() {
			col, _ := p.Features.Column(name)
			for i := 0; i < col.Len(); i++ {
				v := col.Float(i)
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Errorf("non-finite value in %q row %d", name, i)
				}
			}
		}
	}
}

func TestPipeline_Build_InvalidSpec(t *testing.T) {
	raw := tripFrame(t)
	pl := NewPipeline(Config{
		Split: SplitSpec{TargetColumn: "fare_amount", TestFraction: 2},
	})
	_, _, err := pl.Build(context.Background(), raw)
	if !errors.Is(err, ErrInvalidSplitSpec) {
		t.Errorf("expected ErrInvalidSplitSpec, got %v", err)
	}
}

func TestPipeline_Build_BadStageListFailsBeforeWork(t *testing.T) {
	raw := tripFrame(t)
	pl := NewPipeline(Config{
		Split:  SplitSpec{TargetColumn: "fare_amount", TestFraction: 0.2, Seed: seedPtr(1)},
		Stages: []Stage{StatisticalStage{Columns: []string{"bogus"}}},
	})
	_, _, err := pl.Build(context.Background(), raw)
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn at construction, got %v", err)
	}
}
