package csvorders

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mbaumer/orderlink/core/orders"
)

const (
	scheduledPartsFile     = "scheduled-parts.csv"
	scheduledPartsTempGlob = "scheduled-parts-temp-*.csv"
)

// loadScheduledParts reads the scheduled-parts file, first finishing any
// commit that crashed between writing its temp file and renaming it into
// place. When several temp files survived, the lexicographically last one
// wins. A missing file means no schedule has ever been committed.
func (b *Bookings) loadScheduledParts() ([]orders.ScheduledPartWithoutBooking, error) {
	live := filepath.Join(b.basePath, scheduledPartsFile)

	matches, err := filepath.Glob(filepath.Join(b.basePath, scheduledPartsTempGlob))
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		sort.Strings(matches)
		tmp := matches[len(matches)-1]
		if err := os.Remove(live); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("recover %s: %w", scheduledPartsFile, err)
		}
		if err := os.Rename(tmp, live); err != nil {
			return nil, fmt.Errorf("recover %s: %w", scheduledPartsFile, err)
		}
		b.log.Warnf("recovered interrupted scheduled-parts commit from %s", filepath.Base(tmp))
	}

	f, err := os.Open(live)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	parts, err := readScheduledParts(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", scheduledPartsFile, err)
	}
	return parts, nil
}

// commitScheduledParts replaces the scheduled-parts file wholesale. The new
// content is written to a schedule-specific temp file and renamed over the
// live file, so a partial write is never visible: either the rename happened
// or the temp file is left for loadScheduledParts to finish.
func (b *Bookings) commitScheduledParts(scheduleID string, parts []orders.ScheduledPartWithoutBooking) error {
	tmp := filepath.Join(b.basePath, "scheduled-parts-temp-"+scheduleID+".csv")
	live := filepath.Join(b.basePath, scheduledPartsFile)

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := writeScheduledParts(f, parts); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(tmp), err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if err := os.Remove(live); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return os.Rename(tmp, live)
}
