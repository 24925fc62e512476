package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripStore_LoadTripsQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT pickup_time_in_seconds").
		WillReturnError(errors.New("disk I/O error"))

	s := NewWithDB(db, nil)
	_, err = s.LoadTrips(context.Background(), 0)
	assert.ErrorContains(t, err, "failed to query trips")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripStore_CreateRunInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("INSERT INTO runs").
		WillReturnError(errors.New("table locked"))

	s := NewWithDB(db, nil)
	_, err = s.CreateRun(context.Background())
	assert.ErrorContains(t, err, "failed to create run")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripStore_InsertTripsRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectPrepare("INSERT INTO trips").
		ExpectExec().
		WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	s := NewWithDB(db, nil)
	err = s.InsertTrips(context.Background(), []Trip{{PickupSeconds: 1, DropoffSeconds: 2}})
	assert.ErrorContains(t, err, "failed to insert trip")
	assert.NoError(t, mock.ExpectationsWereMet())
}
