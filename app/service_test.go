package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbaumer/orderlink/core/orders"
	"github.com/mbaumer/orderlink/infra/csvorders"
	"github.com/mbaumer/orderlink/infra/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := csvorders.NewStore(csvorders.Config{BasePath: t.TempDir()}, orders.SystemClock(), logger.NopLogger{})
	svc := NewWithStore(store, "csv", logger.NopLogger{}, nil)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestHandleLoadUnscheduled(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Handle(orders.LoadUnscheduled{})
	require.NoError(t, err)
	status, ok := res.(orders.UnscheduledStatus)
	require.True(t, ok, "unexpected result type %T", res)
	assert.Empty(t, status.UnscheduledBookings)
}

func TestHandleScheduleAndBackout(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Handle(orders.CreateScheduleRequest{Schedule: orders.NewSchedule{
		ScheduleID:       "77",
		ScheduledTimeUTC: time.Date(2016, 11, 5, 0, 0, 0, 0, time.UTC),
		BookingIDs:       []string{"b1"},
		ScheduledParts:   []orders.ScheduledPartWithoutBooking{{Part: "p", Quantity: 2}},
	}})
	require.NoError(t, err)

	_, err = svc.Handle(orders.BackoutWork{BackoutID: 9, Parts: []orders.BackedOutPart{{Part: "p", Quantity: 1}}})
	require.NoError(t, err)

	res, err := svc.Handle(orders.LoadUnscheduled{})
	require.NoError(t, err)
	status := res.(orders.UnscheduledStatus)
	require.NotNil(t, status.LatestBackoutID)
	assert.Equal(t, int64(9), *status.LatestBackoutID)
	assert.Equal(t, []orders.ScheduledPartWithoutBooking{{Part: "p", Quantity: 2}}, status.ScheduledParts)
}

func TestHandleLoadWorkorders(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Handle(orders.LoadWorkorders{})
	require.NoError(t, err)
	assert.Empty(t, res)
}
