package csvorders

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mbaumer/orderlink/core/orders"
)

// File formats exchanged with the ERP. Dates are calendar days, timestamps
// are UTC instants, durations are minutes.
const (
	dateFormat      = "2006-01-02"
	timestampFormat = "2006-01-02T15:04:05Z"
)

var demandHeader = []string{"Id", "DueDate", "Priority", "Part", "Quantity"}

// demandRow is one line of bookings.csv or workorders.csv. ID may be empty;
// the ledgers synthesize one while grouping.
type demandRow struct {
	ID       string
	DueDate  time.Time
	Priority int
	Part     string
	Quantity int
}

// readDemandRows decodes demand rows from r. The Id column is optional; all
// other columns are located by header name so the ERP may reorder or extend
// the file. Malformed rows fail the whole read.
func readDemandRows(r io.Reader) ([]demandRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	idx := map[string]int{}
	for i, name := range records[0] {
		idx[name] = i
	}
	for _, col := range demandHeader[1:] {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}
	idCol, hasID := idx["Id"]

	rows := make([]demandRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := parseDemandRow(rec, idx, idCol, hasID)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseDemandRow(rec []string, idx map[string]int, idCol int, hasID bool) (demandRow, error) {
	var row demandRow
	if hasID {
		row.ID = rec[idCol]
	}
	due, err := time.ParseInLocation(dateFormat, rec[idx["DueDate"]], time.UTC)
	if err != nil {
		return row, fmt.Errorf("due date: %w", err)
	}
	row.DueDate = due
	prio, err := strconv.Atoi(rec[idx["Priority"]])
	if err != nil {
		return row, fmt.Errorf("priority: %w", err)
	}
	row.Priority = prio
	row.Part = rec[idx["Part"]]
	qty, err := strconv.Atoi(rec[idx["Quantity"]])
	if err != nil {
		return row, fmt.Errorf("quantity: %w", err)
	}
	row.Quantity = qty
	return row, nil
}

func writeDemandRows(w io.Writer, withHeader bool, rows []demandRow) error {
	cw := csv.NewWriter(w)
	if withHeader {
		if err := cw.Write(demandHeader); err != nil {
			return err
		}
	}
	for _, row := range rows {
		rec := []string{
			row.ID,
			row.DueDate.Format(dateFormat),
			strconv.Itoa(row.Priority),
			row.Part,
			strconv.Itoa(row.Quantity),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var scheduledPartHeader = []string{"Part", "Quantity"}

func readScheduledParts(r io.Reader) ([]orders.ScheduledPartWithoutBooking, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	idx := map[string]int{}
	for i, name := range records[0] {
		idx[name] = i
	}
	for _, col := range scheduledPartHeader {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	parts := make([]orders.ScheduledPartWithoutBooking, 0, len(records)-1)
	for i, rec := range records[1:] {
		qty, err := strconv.Atoi(rec[idx["Quantity"]])
		if err != nil {
			return nil, fmt.Errorf("row %d: quantity: %w", i+2, err)
		}
		parts = append(parts, orders.ScheduledPartWithoutBooking{
			Part:     rec[idx["Part"]],
			Quantity: qty,
		})
	}
	return parts, nil
}

func writeScheduledParts(w io.Writer, parts []orders.ScheduledPartWithoutBooking) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(scheduledPartHeader); err != nil {
		return err
	}
	for _, p := range parts {
		if err := cw.Write([]string{p.Part, strconv.Itoa(p.Quantity)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatMinutes renders a duration as fractional minutes, trimming trailing
// zeros the way the ERP expects.
func formatMinutes(d time.Duration) string {
	return strconv.FormatFloat(d.Minutes(), 'f', -1, 64)
}

// dayStart truncates t to midnight UTC. Due-date horizons are computed
// against it.
func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
