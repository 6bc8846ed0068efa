package sqlorders

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mbaumer/orderlink/core/orders"
)

const timestampFormat = "2006-01-02T15:04:05Z"

// AddWorkorder inserts a new workorder with its demand rows.
func (s *Store) AddWorkorder(w orders.Workorder) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`INSERT INTO workorders (workorder_id, due_date, priority, filled_utc) VALUES (?, ?, ?, NULL)`,
		w.WorkorderID, w.DueDate.UTC().Format(dateFormat), w.Priority,
	); err != nil {
		return fmt.Errorf("insert workorder %s: %w", w.WorkorderID, err)
	}
	for _, p := range w.Parts {
		if _, err := tx.Exec(
			`INSERT INTO workorder_demand (workorder_id, part, quantity) VALUES (?, ?, ?)`,
			w.WorkorderID, p.Part, p.Quantity,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadUnfilledWorkorders implements orders.WorkorderStore.
func (s *Store) LoadUnfilledWorkorders(lookaheadDays int) ([]orders.Workorder, error) {
	query := `SELECT workorder_id, due_date, priority FROM workorders WHERE filled_utc IS NULL`
	var args []any
	if lookaheadDays > 0 {
		end := dayStart(s.clock.Now()).AddDate(0, 0, lookaheadDays)
		query += ` AND due_date <= ?`
		args = append(args, end.Format(dateFormat))
	}
	query += ` ORDER BY workorder_id`
	return s.queryWorkorders(query, args...)
}

// LoadUnfilledWorkordersForPart implements orders.WorkorderStore.
func (s *Store) LoadUnfilledWorkordersForPart(part string) ([]orders.Workorder, error) {
	return s.queryWorkorders(
		`SELECT w.workorder_id, w.due_date, w.priority FROM workorders w
		 WHERE w.filled_utc IS NULL AND EXISTS (
		     SELECT 1 FROM workorder_demand d
		     WHERE d.workorder_id = w.workorder_id AND d.part = ?)
		 ORDER BY w.workorder_id`, part)
}

func (s *Store) queryWorkorders(query string, args ...any) ([]orders.Workorder, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var res []orders.Workorder
	for rows.Next() {
		var w orders.Workorder
		var due string
		if err := rows.Scan(&w.WorkorderID, &due, &w.Priority); err != nil {
			return nil, err
		}
		if w.DueDate, err = time.ParseInLocation(dateFormat, due, time.UTC); err != nil {
			return nil, fmt.Errorf("workorder %s: due date: %w", w.WorkorderID, err)
		}
		res = append(res, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range res {
		w := &res[i]
		if w.Parts, err = s.loadWorkorderDemand(w.WorkorderID); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (s *Store) loadWorkorderDemand(workorderID string) ([]orders.WorkorderDemand, error) {
	rows, err := s.db.Query(
		`SELECT part, quantity FROM workorder_demand WHERE workorder_id = ? ORDER BY part`, workorderID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var parts []orders.WorkorderDemand
	for rows.Next() {
		d := orders.WorkorderDemand{WorkorderID: workorderID}
		if err := rows.Scan(&d.Part, &d.Quantity); err != nil {
			return nil, err
		}
		parts = append(parts, d)
	}
	return parts, rows.Err()
}

// MarkWorkorderFilled implements orders.WorkorderStore. Station time maps are
// stored as JSON objects of minutes keyed by station name.
func (s *Store) MarkWorkorderFilled(workorderID string, filledUTC time.Time, res orders.WorkorderResources) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	ts := filledUTC.UTC().Format(timestampFormat)
	if _, err := tx.Exec(
		`UPDATE workorders SET filled_utc = ? WHERE workorder_id = ?`, ts, workorderID,
	); err != nil {
		return fmt.Errorf("mark filled %s: %w", workorderID, err)
	}

	serials, err := json.Marshal(res.Serials)
	if err != nil {
		return err
	}
	for _, p := range res.Parts {
		active, err := json.Marshal(minutesMap(p.ActiveOperationTime))
		if err != nil {
			return err
		}
		elapsed, err := json.Marshal(minutesMap(p.ElapsedOperationTime))
		if err != nil {
			return err
		}
		if _, err := tx.Exec(
			`INSERT INTO filled_workorder_parts
			 (workorder_id, completed_utc, part, parts_completed, serials, active_minutes, elapsed_minutes)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			workorderID, ts, p.Part, p.PartsCompleted, string(serials), string(active), string(elapsed),
		); err != nil {
			return fmt.Errorf("fill record %s/%s: %w", workorderID, p.Part, err)
		}
	}
	return tx.Commit()
}

func minutesMap(times map[string]time.Duration) map[string]float64 {
	m := make(map[string]float64, len(times))
	for k, d := range times {
		m[k] = d.Minutes()
	}
	return m
}
