package csvorders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbaumer/orderlink/core/orders"
)

func TestLatestBackoutIDAbsent(t *testing.T) {
	b, _ := newTestBookings(t)
	seedBookings(t, b.basePath)

	status, err := b.LoadUnscheduledStatus(0)
	require.NoError(t, err)
	assert.Nil(t, status.LatestBackoutID)
}

func TestHandleBackedOutWork(t *testing.T) {
	b, dir := newTestBookings(t)
	seedBookings(t, dir)

	err := b.HandleBackedOutWork(667788, []orders.BackedOutPart{
		{Part: "abc", Quantity: 23},
		{Part: "def", Quantity: 193},
	})
	require.NoError(t, err)

	status, err := b.LoadUnscheduledStatus(0)
	require.NoError(t, err)
	require.NotNil(t, status.LatestBackoutID)
	assert.Equal(t, int64(667788), *status.LatestBackoutID)

	byID := map[string]orders.Booking{}
	for _, bk := range status.UnscheduledBookings {
		byID[bk.BookingID] = bk
	}
	// existing bookings are untouched
	assert.Contains(t, byID, "booking1")
	assert.Contains(t, byID, "booking2")
	assert.Contains(t, byID, "booking3")

	abc, ok := byID["Reschedule-abc-2016-11-05T10-22-33Z"]
	require.True(t, ok, "synthesized booking for abc missing: %v", status.UnscheduledBookings)
	assert.Equal(t, 100, abc.Priority)
	assert.Equal(t, dayStart(testNow), abc.DueDate)
	require.Len(t, abc.Parts, 1)
	assert.Equal(t, "abc", abc.Parts[0].Part)
	assert.Equal(t, 23, abc.Parts[0].Quantity)

	def, ok := byID["Reschedule-def-2016-11-05T10-22-33Z"]
	require.True(t, ok)
	require.Len(t, def.Parts, 1)
	assert.Equal(t, 193, def.Parts[0].Quantity)
}

func TestHandleBackedOutWorkCreatesLedgerIfMissing(t *testing.T) {
	b, dir := newTestBookings(t)

	err := b.HandleBackedOutWork(1, []orders.BackedOutPart{{Part: "p1", Quantity: 7}})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "bookings.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Id,DueDate,Priority,Part,Quantity")
	assert.Contains(t, string(data), "Reschedule-p1-2016-11-05T10-22-33Z,2016-11-05,100,p1,7")
}

func TestHandleBackedOutWorkOverwritesID(t *testing.T) {
	b, dir := newTestBookings(t)
	seedBookings(t, dir)

	require.NoError(t, b.HandleBackedOutWork(5, nil))
	require.NoError(t, b.HandleBackedOutWork(6, nil))

	id, err := b.loadLatestBackoutID()
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(6), *id)
}
