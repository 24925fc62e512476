package store

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/LeoSousa155/DataScience/pkg/frame"
)

// Trip is one raw ride record as stored in the trips table.
type Trip struct {
	PickupSeconds  float64
	DropoffSeconds float64
	TripDistance   float64
	FareAmount     float64
	TipAmount      float64
	PassengerCount int64
	VendorID       string
}

// InsertTrips appends trip rows in a single transaction.
func (s *TripStore) InsertTrips(ctx context.Context, trips []Trip) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO trips (pickup_time_in_seconds, dropoff_time_in_seconds, trip_distance,
		 fare_amount, tip_amount, passenger_count, vendor_id) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, t := range trips {
		_, err := stmt.ExecContext(ctx,
			t.PickupSeconds, t.DropoffSeconds, nullable(t.TripDistance),
			nullable(t.FareAmount), nullable(t.TipAmount), t.PassengerCount, t.VendorID)
		if err != nil {
			return fmt.Errorf("failed to insert trip: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit trips: %w", err)
	}
	s.logger.Debug("inserted trips", slog.Int("count", len(trips)))
	return nil
}

// LoadTrips reads up to limit trip rows into a frame. A limit of zero
// or less loads every row. NULL numeric cells become NaN so the
// cleaner's missing-value policies apply to them.
func (s *TripStore) LoadTrips(ctx context.Context, limit int) (*frame.Frame, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	query := `SELECT pickup_time_in_seconds, dropoff_time_in_seconds, trip_distance,
		fare_amount, tip_amount, passenger_count, vendor_id FROM trips ORDER BY id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var (
		pickup, dropoff, distance []float64
		fare, tip                 []float64
		passengers                []int64
		vendors                   []string
	)
	for rows.Next() {
		var t Trip
		var dist, fareAmt, tipAmt *float64
		if err := rows.Scan(&t.PickupSeconds, &t.DropoffSeconds, &dist,
			&fareAmt, &tipAmt, &t.PassengerCount, &t.VendorID); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		pickup = append(pickup, t.PickupSeconds)
		dropoff = append(dropoff, t.DropoffSeconds)
		distance = append(distance, deref(dist))
		fare = append(fare, deref(fareAmt))
		tip = append(tip, deref(tipAmt))
		passengers = append(passengers, t.PassengerCount)
		vendors = append(vendors, t.VendorID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trips: %w", err)
	}

	f, err := frame.New(
		frame.NewFloatColumn("pickup_time_in_seconds", pickup),
		frame.NewFloatColumn("dropoff_time_in_seconds", dropoff),
		frame.NewFloatColumn("trip_distance", distance),
		frame.NewFloatColumn("fare_amount", fare),
		frame.NewFloatColumn("tip_amount", tip),
		frame.NewIntColumn("passenger_count", passengers),
		frame.NewStringColumn("vendor_id", vendors),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build trip frame: %w", err)
	}

	s.logger.Debug("loaded trips", slog.Int("rows", f.NumRows()))
	return f, nil
}

// nullable maps NaN to a SQL NULL on the way in.
func nullable(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

// deref maps a SQL NULL to NaN on the way out.
func deref(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
