// Package store persists trip records and pipeline-run bookkeeping in
// SQLite. The raw trip table feeds the preparation pipeline; finished
// runs are recorded with their partition sizes so repeated runs can be
// audited.
package store

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

//go:embed migrations/*.sql
var migrations embed.FS

// TripStore wraps a SQLite database holding trips and runs.
type TripStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// New creates an unopened store. A nil logger discards diagnostics.
func New(logger *slog.Logger) *TripStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TripStore{logger: logger}
}

// NewWithDB wraps an existing connection, used by tests that inject
// mocked databases.
func NewWithDB(db *sql.DB, logger *slog.Logger) *TripStore {
	s := New(logger)
	s.db = db
	return s
}

// Open opens the SQLite database at path. Use ":memory:" for an
// in-memory database.
func (s *TripStore) Open(path string) error {
	// _time_format makes the driver round-trip TIMESTAMP columns as
	// time.Time values.
	dsn := "file:" + path + "?_time_format=sqlite"
	if path == ":memory:" {
		dsn = "file::memory:?_time_format=sqlite"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	s.db = db
	s.path = path
	return nil
}

// Close closes the underlying connection.
func (s *TripStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Migrate runs all pending schema migrations.
func (s *TripStore) Migrate() error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	s.logger.Debug("migrations applied", slog.String("path", s.path))
	return nil
}
