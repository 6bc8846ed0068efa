package csvorders

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mbaumer/orderlink/core/orders"
)

const latestBackoutFile = "latest-backout-id"

// loadLatestBackoutID reads the scalar backout id file. nil means no backout
// has ever been recorded.
func (b *Bookings) loadLatestBackoutID() (*int64, error) {
	data, err := os.ReadFile(filepath.Join(b.basePath, latestBackoutFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	id, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", latestBackoutFile, err)
	}
	return &id, nil
}

// HandleBackedOutWork implements orders.BookingStore. The id file is
// overwritten before the demand rows are appended; the two writes are not
// transactional, so a crash in between advances the id without the
// compensating demand. Callers see that through LoadUnscheduledStatus and
// must not redeliver an already-applied backout id.
func (b *Bookings) HandleBackedOutWork(backoutID int64, parts []orders.BackedOutPart) error {
	idFile := filepath.Join(b.basePath, latestBackoutFile)
	if err := os.WriteFile(idFile, []byte(strconv.FormatInt(backoutID, 10)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", latestBackoutFile, err)
	}
	return b.appendBackoutDemand(parts)
}

// appendBackoutDemand synthesizes one new booking per backed-out part and
// appends it to the unscheduled ledger without disturbing existing rows.
func (b *Bookings) appendBackoutDemand(parts []orders.BackedOutPart) error {
	path := b.bookingsPath()
	_, statErr := os.Stat(path)
	existed := statErr == nil

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	now := b.clock.Now().UTC()
	stamp := now.Format("2006-01-02T15-04-05Z")
	today := dayStart(now)
	rows := make([]demandRow, 0, len(parts))
	for _, p := range parts {
		rows = append(rows, demandRow{
			ID:       "Reschedule-" + p.Part + "-" + stamp,
			DueDate:  today,
			Priority: 100,
			Part:     p.Part,
			Quantity: p.Quantity,
		})
	}
	werr := writeDemandRows(f, !existed, rows)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("append backout demand: %w", werr)
	}
	return nil
}
