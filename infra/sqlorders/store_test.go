package sqlorders

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbaumer/orderlink/core/orders"
	"github.com/mbaumer/orderlink/infra/logger"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2016, 11, 5, 10, 22, 33, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Config{Path: filepath.Join(t.TempDir(), "orders.db")}, fixedClock{testNow}, logger.NopLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.AddBooking(orders.Booking{
		BookingID: "booking1", DueDate: time.Date(2016, 11, 10, 0, 0, 0, 0, time.UTC), Priority: 100,
		Parts: []orders.BookingDemand{
			{BookingID: "booking1", Part: "part1", Quantity: 44},
			{BookingID: "booking1", Part: "part2", Quantity: 66},
		},
	}))
	require.NoError(t, s.AddBooking(orders.Booking{
		BookingID: "booking2", DueDate: time.Date(2016, 11, 20, 0, 0, 0, 0, time.UTC), Priority: 200,
		Parts: []orders.BookingDemand{
			{BookingID: "booking2", Part: "part1", Quantity: 55},
		},
	}))
	return s
}

func TestLoadUnscheduledStatus(t *testing.T) {
	s := newTestStore(t)

	status, err := s.LoadUnscheduledStatus(0)
	require.NoError(t, err)
	require.Len(t, status.UnscheduledBookings, 2)
	assert.Equal(t, "booking1", status.UnscheduledBookings[0].BookingID)
	assert.Len(t, status.UnscheduledBookings[0].Parts, 2)
	assert.Nil(t, status.LatestBackoutID)
	assert.Empty(t, status.ScheduledParts)

	status, err = s.LoadUnscheduledStatus(10)
	require.NoError(t, err)
	require.Len(t, status.UnscheduledBookings, 1)
	assert.Equal(t, "booking1", status.UnscheduledBookings[0].BookingID)
}

func TestCreateScheduleMarksBookingsAndReplacesParts(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateSchedule(orders.NewSchedule{
		ScheduleID: "sch1",
		BookingIDs: []string{"booking1"},
		ScheduledParts: []orders.ScheduledPartWithoutBooking{
			{Part: "part1", Quantity: 12},
		},
	}))

	status, err := s.LoadUnscheduledStatus(0)
	require.NoError(t, err)
	require.Len(t, status.UnscheduledBookings, 1)
	assert.Equal(t, "booking2", status.UnscheduledBookings[0].BookingID)
	assert.Equal(t, []orders.ScheduledPartWithoutBooking{{Part: "part1", Quantity: 12}}, status.ScheduledParts)

	// the scheduled-parts set is replaced wholesale, not merged
	require.NoError(t, s.CreateSchedule(orders.NewSchedule{
		ScheduleID:     "sch2",
		ScheduledParts: []orders.ScheduledPartWithoutBooking{{Part: "part9", Quantity: 1}},
	}))
	status, err = s.LoadUnscheduledStatus(0)
	require.NoError(t, err)
	assert.Equal(t, []orders.ScheduledPartWithoutBooking{{Part: "part9", Quantity: 1}}, status.ScheduledParts)
}

func TestHandleBackedOutWork(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.HandleBackedOutWork(667788, []orders.BackedOutPart{
		{Part: "abc", Quantity: 23},
	}))

	status, err := s.LoadUnscheduledStatus(0)
	require.NoError(t, err)
	require.NotNil(t, status.LatestBackoutID)
	assert.Equal(t, int64(667788), *status.LatestBackoutID)

	found := false
	for _, bk := range status.UnscheduledBookings {
		if bk.BookingID == "Reschedule-abc-2016-11-05T10-22-33Z" {
			found = true
			assert.Equal(t, 100, bk.Priority)
			assert.Equal(t, time.Date(2016, 11, 5, 0, 0, 0, 0, time.UTC), bk.DueDate)
			require.Len(t, bk.Parts, 1)
			assert.Equal(t, 23, bk.Parts[0].Quantity)
		}
	}
	assert.True(t, found)
}

func TestWorkorderFillLifecycle(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AddWorkorder(orders.Workorder{
		WorkorderID: "work1", DueDate: time.Date(2016, 11, 10, 0, 0, 0, 0, time.UTC), Priority: 100,
		Parts: []orders.WorkorderDemand{
			{WorkorderID: "work1", Part: "part1", Quantity: 4},
		},
	}))
	require.NoError(t, s.AddWorkorder(orders.Workorder{
		WorkorderID: "work2", DueDate: time.Date(2016, 12, 1, 0, 0, 0, 0, time.UTC), Priority: 200,
		Parts: []orders.WorkorderDemand{
			{WorkorderID: "work2", Part: "part2", Quantity: 7},
		},
	}))

	got, err := s.LoadUnfilledWorkorders(0)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.LoadUnfilledWorkordersForPart("part2")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "work2", got[0].WorkorderID)

	require.NoError(t, s.MarkWorkorderFilled("work1", testNow, orders.WorkorderResources{
		Serials: []string{"s1"},
		Parts: []orders.WorkorderPartResources{{
			Part:                "part1",
			PartsCompleted:      4,
			ActiveOperationTime: map[string]time.Duration{"weld": 15 * time.Minute},
		}},
	}))

	got, err = s.LoadUnfilledWorkorders(0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "work2", got[0].WorkorderID)
}
