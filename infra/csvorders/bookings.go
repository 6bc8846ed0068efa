package csvorders

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/mbaumer/orderlink/core/logger"
	"github.com/mbaumer/orderlink/core/orders"
)

const (
	bookingsFile             = "bookings.csv"
	defaultScheduledBookings = "scheduled-bookings"
)

// Config locates the ledger files. BasePath is the directory shared with the
// ERP; the sentinel directories are relative to it.
type Config struct {
	BasePath             string `json:"base_path" mapstructure:"base_path"`
	ScheduledBookingsDir string `json:"scheduled_bookings_dir" mapstructure:"scheduled_bookings_dir"`
	FilledWorkordersDir  string `json:"filled_workorders_dir" mapstructure:"filled_workorders_dir"`
}

// SetDefaults fills in values for fields left empty.
func (c *Config) SetDefaults() {
	if c.BasePath == "" {
		c.BasePath = "."
	}
	if c.ScheduledBookingsDir == "" {
		c.ScheduledBookingsDir = defaultScheduledBookings
	}
	if c.FilledWorkordersDir == "" {
		c.FilledWorkordersDir = defaultFilledWorkorders
	}
}

// Bookings is the booking side of the store: the unscheduled ledger, the
// per-booking scheduled sentinels, the scheduled-parts file, and the backout
// id file.
type Bookings struct {
	basePath string
	schDir   string
	clock    orders.Clock
	log      logger.Logger
}

// NewBookings creates the booking ledger rooted at cfg.BasePath.
func NewBookings(cfg Config, clk orders.Clock, log logger.Logger) *Bookings {
	cfg.SetDefaults()
	return &Bookings{
		basePath: cfg.BasePath,
		schDir:   cfg.ScheduledBookingsDir,
		clock:    clk,
		log:      log,
	}
}

func (b *Bookings) bookingsPath() string {
	return filepath.Join(b.basePath, bookingsFile)
}

func (b *Bookings) sentinelPath(bookingID string) string {
	return filepath.Join(b.basePath, b.schDir, bookingID+".csv")
}

// LoadUnscheduledStatus implements orders.BookingStore.
func (b *Bookings) LoadUnscheduledStatus(lookaheadDays int) (orders.UnscheduledStatus, error) {
	var status orders.UnscheduledStatus

	unscheduled, err := b.loadUnscheduled()
	if err != nil {
		return status, err
	}
	var end time.Time
	if lookaheadDays > 0 {
		end = dayStart(b.clock.Now()).AddDate(0, 0, lookaheadDays)
	}
	for _, bk := range unscheduled {
		if lookaheadDays > 0 && bk.DueDate.After(end) {
			continue
		}
		status.UnscheduledBookings = append(status.UnscheduledBookings, *bk)
	}
	sort.Slice(status.UnscheduledBookings, func(i, j int) bool {
		return status.UnscheduledBookings[i].BookingID < status.UnscheduledBookings[j].BookingID
	})

	if status.ScheduledParts, err = b.loadScheduledParts(); err != nil {
		return status, err
	}
	if status.LatestBackoutID, err = b.loadLatestBackoutID(); err != nil {
		return status, err
	}
	return status, nil
}

// loadUnscheduled returns the merged booking map minus every booking whose
// scheduled sentinel exists.
func (b *Bookings) loadUnscheduled() (map[string]*orders.Booking, error) {
	m, err := b.loadBookingMap()
	if err != nil {
		return nil, err
	}
	for id := range m {
		if _, err := os.Stat(b.sentinelPath(id)); err == nil {
			delete(m, id)
		}
	}
	return m, nil
}

// loadBookingMap reads the raw unscheduled ledger and groups rows by booking
// id, synthesizing an id for blank rows. Sentinel shadowing is not applied
// here: markScheduled needs the raw view so a retried schedule reproduces the
// same sentinel contents.
func (b *Bookings) loadBookingMap() (map[string]*orders.Booking, error) {
	m := map[string]*orders.Booking{}

	f, err := os.Open(b.bookingsPath())
	if errors.Is(err, os.ErrNotExist) {
		if err := b.createSampleBookingFile(); err != nil {
			return nil, err
		}
		return m, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	rows, err := readDemandRows(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", bookingsFile, err)
	}

	stamp := b.clock.Now().UTC().Format("2006-01-02-15-04-05")
	ordinal := 0
	for _, row := range rows {
		id := row.ID
		if id == "" {
			id = "B" + stamp + "-" + strconv.Itoa(ordinal)
			ordinal++
		}
		bk, ok := m[id]
		if !ok {
			bk = &orders.Booking{
				BookingID: id,
				DueDate:   row.DueDate,
				Priority:  row.Priority,
			}
			m[id] = bk
		}
		bk.Parts = append(bk.Parts, orders.BookingDemand{
			BookingID: id,
			Part:      row.Part,
			Quantity:  row.Quantity,
		})
	}
	return m, nil
}

// createSampleBookingFile seeds bookings.csv with two example rows so the ERP
// side has a template to fill in.
func (b *Bookings) createSampleBookingFile() error {
	today := dayStart(b.clock.Now())
	rows := []demandRow{
		{ID: "12345", DueDate: today.AddDate(0, 0, 10), Priority: 100, Part: "part1", Quantity: 50},
		{ID: "98765", DueDate: today.AddDate(0, 0, 12), Priority: 100, Part: "part2", Quantity: 77},
	}
	f, err := os.Create(b.bookingsPath())
	if err != nil {
		return err
	}
	if err := writeDemandRows(f, true, rows); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// CreateSchedule implements orders.BookingStore. The scheduled-parts file is
// committed first through the temp-then-rename protocol so a reader never
// observes a half-written file; the per-booking sentinels are then written
// independently. A crash mid-loop leaves a mixed state that is resolved by
// retrying the identical call.
func (b *Bookings) CreateSchedule(s orders.NewSchedule) error {
	if err := os.MkdirAll(filepath.Join(b.basePath, b.schDir), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", b.schDir, err)
	}
	if err := b.commitScheduledParts(s.ScheduleID, s.ScheduledParts); err != nil {
		return err
	}
	return b.markScheduled(s.ScheduleID, s.ScheduledTimeUTC, s.BookingIDs)
}

// markScheduled writes one sentinel file per booking id. A booking id absent
// from the ledger still gets a sentinel with a single placeholder row.
func (b *Bookings) markScheduled(scheduleID string, scheduledAtUTC time.Time, bookingIDs []string) error {
	all, err := b.loadBookingMap()
	if err != nil {
		return err
	}
	ts := scheduledAtUTC.UTC().Format(timestampFormat)
	for _, id := range bookingIDs {
		if err := b.writeSentinel(id, ts, scheduleID, all[id]); err != nil {
			return fmt.Errorf("sentinel %s: %w", id, err)
		}
	}
	return nil
}

func (b *Bookings) writeSentinel(bookingID, ts, scheduleID string, bk *orders.Booking) error {
	f, err := os.Create(b.sentinelPath(bookingID))
	if err != nil {
		return err
	}
	cw := csv.NewWriter(f)
	werr := cw.Write([]string{"ScheduledTimeUTC", "Part", "Quantity", "ScheduleId"})
	if werr == nil {
		if bk != nil {
			for _, p := range bk.Parts {
				if werr = cw.Write([]string{ts, p.Part, strconv.Itoa(p.Quantity), scheduleID}); werr != nil {
					break
				}
			}
		} else {
			werr = cw.Write([]string{ts, "", "0", scheduleID})
		}
	}
	cw.Flush()
	if werr == nil {
		werr = cw.Error()
	}
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	return werr
}
