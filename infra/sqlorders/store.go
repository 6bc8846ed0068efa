// Package sqlorders implements the order store on an embedded sqlite
// database instead of flat files. It is intended for deployments where the
// ERP integrates through SQL rather than a shared directory; the observable
// semantics match the CSV backend, but schedule creation and backout are
// naturally transactional here.
package sqlorders

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/mbaumer/orderlink/core/logger"
	"github.com/mbaumer/orderlink/core/orders"
)

// Store implements orders.BookingStore and orders.WorkorderStore on sqlite.
type Store struct {
	db    *sql.DB
	clock orders.Clock
	log   logger.Logger
}

// Config holds the sqlite backend settings.
type Config struct {
	Path string `json:"path" mapstructure:"path"`
}

const schema = `
CREATE TABLE IF NOT EXISTS bookings (
    booking_id TEXT PRIMARY KEY,
    due_date TEXT NOT NULL,
    priority INTEGER NOT NULL,
    schedule_id TEXT
);
CREATE TABLE IF NOT EXISTS booking_demand (
    booking_id TEXT NOT NULL,
    part TEXT NOT NULL,
    quantity INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS scheduled_parts (
    part TEXT PRIMARY KEY,
    quantity INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS latest_backout (
    rowid INTEGER PRIMARY KEY CHECK (rowid = 1),
    backout_id INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS workorders (
    workorder_id TEXT PRIMARY KEY,
    due_date TEXT NOT NULL,
    priority INTEGER NOT NULL,
    filled_utc TEXT
);
CREATE TABLE IF NOT EXISTS workorder_demand (
    workorder_id TEXT NOT NULL,
    part TEXT NOT NULL,
    quantity INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS filled_workorder_parts (
    workorder_id TEXT NOT NULL,
    completed_utc TEXT NOT NULL,
    part TEXT NOT NULL,
    parts_completed INTEGER NOT NULL,
    serials TEXT NOT NULL,
    active_minutes TEXT NOT NULL,
    elapsed_minutes TEXT NOT NULL
);
`

// New opens or creates the database at path and ensures the schema.
func New(cfg Config, clk orders.Clock, log logger.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &Store{db: db, clock: clk, log: log}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }
