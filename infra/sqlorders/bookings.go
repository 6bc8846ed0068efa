package sqlorders

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mbaumer/orderlink/core/orders"
)

const dateFormat = "2006-01-02"

// AddBooking inserts a new booking with its demand rows. This is the ERP-side
// ingestion path; in the CSV backend the ERP appends rows to bookings.csv
// directly.
func (s *Store) AddBooking(b orders.Booking) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`INSERT INTO bookings (booking_id, due_date, priority, schedule_id) VALUES (?, ?, ?, NULL)`,
		b.BookingID, b.DueDate.UTC().Format(dateFormat), b.Priority,
	); err != nil {
		return fmt.Errorf("insert booking %s: %w", b.BookingID, err)
	}
	for _, p := range b.Parts {
		if _, err := tx.Exec(
			`INSERT INTO booking_demand (booking_id, part, quantity) VALUES (?, ?, ?)`,
			b.BookingID, p.Part, p.Quantity,
		); err != nil {
			return fmt.Errorf("insert demand %s/%s: %w", b.BookingID, p.Part, err)
		}
	}
	return tx.Commit()
}

// LoadUnscheduledStatus implements orders.BookingStore.
func (s *Store) LoadUnscheduledStatus(lookaheadDays int) (orders.UnscheduledStatus, error) {
	var status orders.UnscheduledStatus

	query := `SELECT booking_id, due_date, priority FROM bookings WHERE schedule_id IS NULL`
	var args []any
	if lookaheadDays > 0 {
		end := dayStart(s.clock.Now()).AddDate(0, 0, lookaheadDays)
		query += ` AND due_date <= ?`
		args = append(args, end.Format(dateFormat))
	}
	query += ` ORDER BY booking_id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return status, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var bk orders.Booking
		var due string
		if err := rows.Scan(&bk.BookingID, &due, &bk.Priority); err != nil {
			return status, err
		}
		if bk.DueDate, err = time.ParseInLocation(dateFormat, due, time.UTC); err != nil {
			return status, fmt.Errorf("booking %s: due date: %w", bk.BookingID, err)
		}
		status.UnscheduledBookings = append(status.UnscheduledBookings, bk)
	}
	if err := rows.Err(); err != nil {
		return status, err
	}
	for i := range status.UnscheduledBookings {
		bk := &status.UnscheduledBookings[i]
		if bk.Parts, err = s.loadDemand(bk.BookingID); err != nil {
			return status, err
		}
	}

	if status.ScheduledParts, err = s.loadScheduledParts(); err != nil {
		return status, err
	}
	if status.LatestBackoutID, err = s.loadLatestBackoutID(); err != nil {
		return status, err
	}
	return status, nil
}

func (s *Store) loadDemand(bookingID string) ([]orders.BookingDemand, error) {
	rows, err := s.db.Query(
		`SELECT part, quantity FROM booking_demand WHERE booking_id = ? ORDER BY part`, bookingID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var parts []orders.BookingDemand
	for rows.Next() {
		d := orders.BookingDemand{BookingID: bookingID}
		if err := rows.Scan(&d.Part, &d.Quantity); err != nil {
			return nil, err
		}
		parts = append(parts, d)
	}
	return parts, rows.Err()
}

func (s *Store) loadScheduledParts() ([]orders.ScheduledPartWithoutBooking, error) {
	rows, err := s.db.Query(`SELECT part, quantity FROM scheduled_parts ORDER BY part`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var parts []orders.ScheduledPartWithoutBooking
	for rows.Next() {
		var p orders.ScheduledPartWithoutBooking
		if err := rows.Scan(&p.Part, &p.Quantity); err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}

func (s *Store) loadLatestBackoutID() (*int64, error) {
	var id int64
	err := s.db.QueryRow(`SELECT backout_id FROM latest_backout WHERE rowid = 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// CreateSchedule implements orders.BookingStore. Unlike the CSV backend the
// whole decision commits in one transaction.
func (s *Store) CreateSchedule(sch orders.NewSchedule) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, id := range sch.BookingIDs {
		if _, err := tx.Exec(
			`UPDATE bookings SET schedule_id = ? WHERE booking_id = ?`, sch.ScheduleID, id,
		); err != nil {
			return fmt.Errorf("mark booking %s: %w", id, err)
		}
	}
	if _, err := tx.Exec(`DELETE FROM scheduled_parts`); err != nil {
		return err
	}
	for _, p := range sch.ScheduledParts {
		if _, err := tx.Exec(
			`INSERT INTO scheduled_parts (part, quantity) VALUES (?, ?)`, p.Part, p.Quantity,
		); err != nil {
			return fmt.Errorf("scheduled part %s: %w", p.Part, err)
		}
	}
	return tx.Commit()
}

// HandleBackedOutWork implements orders.BookingStore.
func (s *Store) HandleBackedOutWork(backoutID int64, parts []orders.BackedOutPart) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`INSERT INTO latest_backout (rowid, backout_id) VALUES (1, ?)
		 ON CONFLICT (rowid) DO UPDATE SET backout_id = excluded.backout_id`, backoutID,
	); err != nil {
		return err
	}

	now := s.clock.Now().UTC()
	stamp := now.Format("2006-01-02T15-04-05Z")
	today := dayStart(now).Format(dateFormat)
	for _, p := range parts {
		id := "Reschedule-" + p.Part + "-" + stamp
		if _, err := tx.Exec(
			`INSERT INTO bookings (booking_id, due_date, priority, schedule_id) VALUES (?, ?, 100, NULL)`,
			id, today,
		); err != nil {
			return fmt.Errorf("backout booking %s: %w", id, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO booking_demand (booking_id, part, quantity) VALUES (?, ?, ?)`,
			id, p.Part, p.Quantity,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
