package prep

import (
	"fmt"
	"math"

	"github.com/LeoSousa155/DataScience/pkg/frame"
)

// epsilon guards denominators and logarithm arguments.
const epsilon = 1e-9

// nearZeroMinutes is the duration below which average speed is defined
// as zero rather than a division blow-up.
const nearZeroMinutes = 1e-6

func requireColumns(p *Partition, names ...string) error {
	for _, name := range names {
		if !p.Features.HasColumn(name) {
			return fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}
	return nil
}

func floats(p *Partition, name string) []float64 {
	col, _ := p.Features.Column(name)
	out := make([]float64, col.Len())
	for i := range out {
		out[i] = col.Float(i)
	}
	return out
}

// DomainStage derives per-row trip quantities from the raw record:
// trip duration in minutes, average speed in mph (zero when the
// duration is zero or near zero), and the pickup hour-of-day and
// day-of-week (Monday=0) taken from the pickup seconds counter.
type DomainStage struct{}

func (DomainStage) Name() string { return "domain" }

func (DomainStage) Inputs() []string {
	return []string{ColPickupSeconds, ColDropoffSeconds, ColTripDistance}
}

func (DomainStage) Outputs() []string {
	return []string{ColTripDuration, ColAverageSpeed, ColPickupHour, ColPickupDayOfWeek}
}

func (s DomainStage) Apply(p *Partition) error {
	if err := requireColumns(p, s.Inputs()...); err != nil {
		return err
	}

	pickup := floats(p, ColPickupSeconds)
	dropoff := floats(p, ColDropoffSeconds)
	distance := floats(p, ColTripDistance)
	n := p.NumRows()

	duration := make([]float64, n)
	speed := make([]float64, n)
	hour := make([]int64, n)
	weekday := make([]int64, n)
	for i := 0; i < n; i++ {
		duration[i] = (dropoff[i] - pickup[i]) / 60

		if hours := duration[i] / 60; duration[i] < nearZeroMinutes {
			speed[i] = 0
		} else if v := distance[i] / hours; math.IsNaN(v) || math.IsInf(v, 0) {
			speed[i] = 0
		} else {
			speed[i] = v
		}

		secs := int64(pickup[i])
		hour[i] = secs / 3600 % 24
		// Unix day zero was a Thursday; +3 shifts to Monday=0.
		weekday[i] = (secs/86400 + 3) % 7
	}

	if err := p.Features.SetColumn(frame.NewFloatColumn(ColTripDuration, duration)); err != nil {
		return err
	}
	if err := p.Features.SetColumn(frame.NewFloatColumn(ColAverageSpeed, speed)); err != nil {
		return err
	}
	if err := p.Features.SetColumn(frame.NewIntColumn(ColPickupHour, hour)); err != nil {
		return err
	}
	return p.Features.SetColumn(frame.NewIntColumn(ColPickupDayOfWeek, weekday))
}

// StatisticalStage broadcasts per-partition aggregates (mean, standard
// deviation, 90th percentile) of the configured columns as constant
// columns. Each partition aggregates only its own rows; this is the
// leakage boundary of the whole pipeline.
type StatisticalStage struct {
	Columns []string
}

func (StatisticalStage) Name() string { return "statistical" }

func (s StatisticalStage) Inputs() []string { return append([]string(nil), s.Columns...) }

func (s StatisticalStage) Outputs() []string {
	out := make([]string, 0, 3*len(s.Columns))
	for _, c := range s.Columns {
		out = append(out, c+"_mean", c+"_std", c+"_p90")
	}
	return out
}

func (s StatisticalStage) Apply(p *Partition) error {
	if err := requireColumns(p, s.Columns...); err != nil {
		return err
	}
	n := p.NumRows()
	for _, name := range s.Columns {
		vals := floats(p, name)
		aggs := []struct {
			suffix string
			value  float64
		}{
			{"_mean", mean(vals)},
			{"_std", std(vals)},
			{"_p90", percentile(vals, 90)},
		}
		for _, agg := range aggs {
			constCol := make([]float64, n)
			for i := range constCol {
				constCol[i] = agg.value
			}
			if err := p.Features.SetColumn(frame.NewFloatColumn(name+agg.suffix, constCol)); err != nil {
				return err
			}
		}
	}
	return nil
}

// InteractionStage derives pairwise combinations of existing columns:
// the product and the epsilon-guarded ratio of each configured pair.
type InteractionStage struct {
	Pairs [][2]string
}

func (InteractionStage) Name() string { return "interaction" }

func (s InteractionStage) Inputs() []string {
	var in []string
	seen := make(map[string]struct{})
	for _, pair := range s.Pairs {
		for _, name := range pair {
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				in = append(in, name)
			}
		}
	}
	return in
}

func (s InteractionStage) Outputs() []string {
	out := make([]string, 0, 2*len(s.Pairs))
	for _, pair := range s.Pairs {
		out = append(out, pair[0]+"_x_"+pair[1], pair[0]+"_per_"+pair[1])
	}
	return out
}

func (s InteractionStage) Apply(p *Partition) error {
	if err := requireColumns(p, s.Inputs()...); err != nil {
		return err
	}
	n := p.NumRows()
	for _, pair := range s.Pairs {
		a := floats(p, pair[0])
		b := floats(p, pair[1])
		product := make([]float64, n)
		ratio := make([]float64, n)
		for i := 0; i < n; i++ {
			product[i] = a[i] * b[i]
			ratio[i] = a[i] / (b[i] + epsilon)
		}
		if err := p.Features.SetColumn(frame.NewFloatColumn(pair[0]+"_x_"+pair[1], product)); err != nil {
			return err
		}
		if err := p.Features.SetColumn(frame.NewFloatColumn(pair[0]+"_per_"+pair[1], ratio)); err != nil {
			return err
		}
	}
	return nil
}

// CyclicalEncoding maps a periodic integer column onto the unit circle.
type CyclicalEncoding struct {
	Column string
	Period float64
}

// NonlinearStage derives non-linear transforms: squares, logarithms
// with epsilon substitution for non-positive inputs, and sine/cosine
// pairs for periodic columns (hour-of-day period 24, day-of-week
// period 7).
type NonlinearStage struct {
	SquareColumns []string
	LogColumns    []string
	Cyclical      []CyclicalEncoding
}

func (NonlinearStage) Name() string { return "nonlinear" }

func (s NonlinearStage) Inputs() []string {
	var in []string
	seen := make(map[string]struct{})
	add := func(name string) {
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
			in = append(in, name)
		}
	}
	for _, c := range s.SquareColumns {
		add(c)
	}
	for _, c := range s.LogColumns {
		add(c)
	}
	for _, c := range s.Cyclical {
		add(c.Column)
	}
	return in
}

func (s NonlinearStage) Outputs() []string {
	var out []string
	for _, c := range s.SquareColumns {
		out = append(out, c+"_sq")
	}
	for _, c := range s.LogColumns {
		out = append(out, c+"_log")
	}
	for _, c := range s.Cyclical {
		out = append(out, c.Column+"_sin", c.Column+"_cos")
	}
	return out
}

func (s NonlinearStage) Apply(p *Partition) error {
	if err := requireColumns(p, s.Inputs()...); err != nil {
		return err
	}
	n := p.NumRows()

	for _, name := range s.SquareColumns {
		vals := floats(p, name)
		sq := make([]float64, n)
		for i, v := range vals {
			sq[i] = v * v
		}
		if err := p.Features.SetColumn(frame.NewFloatColumn(name+"_sq", sq)); err != nil {
			return err
		}
	}

	for _, name := range s.LogColumns {
		vals := floats(p, name)
		logs := make([]float64, n)
		for i, v := range vals {
			if v <= 0 {
				v = epsilon
			}
			logs[i] = math.Log(v)
		}
		if err := p.Features.SetColumn(frame.NewFloatColumn(name+"_log", logs)); err != nil {
			return err
		}
	}

	for _, enc := range s.Cyclical {
		vals := floats(p, enc.Column)
		sin := make([]float64, n)
		cos := make([]float64, n)
		for i, v := range vals {
			angle := 2 * math.Pi * v / enc.Period
			sin[i] = math.Sin(angle)
			cos[i] = math.Cos(angle)
		}
		if err := p.Features.SetColumn(frame.NewFloatColumn(enc.Column+"_sin", sin)); err != nil {
			return err
		}
		if err := p.Features.SetColumn(frame.NewFloatColumn(enc.Column+"_cos", cos)); err != nil {
			return err
		}
	}
	return nil
}

// DefaultStages returns the standard four-stage derivation for trip
// records: domain quantities, per-partition aggregates, pairwise
// interactions, and non-linear/cyclical transforms.
func DefaultStages() []Stage {
	return []Stage{
		DomainStage{},
		StatisticalStage{
			Columns: []string{ColTripDistance, ColTripDuration, ColAverageSpeed},
		},
		InteractionStage{
			Pairs: [][2]string{
				{ColTripDistance, ColTripDuration},
				{ColAverageSpeed, ColTripDistance},
			},
		},
		NonlinearStage{
			SquareColumns: []string{ColTripDistance, ColTripDuration},
			LogColumns:    []string{ColTripDistance, ColTripDuration},
			Cyclical: []CyclicalEncoding{
				{Column: ColPickupHour, Period: 24},
				{Column: ColPickupDayOfWeek, Period: 7},
			},
		},
	}
}
