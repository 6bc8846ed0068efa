package csvorders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbaumer/orderlink/core/orders"
)

func TestScheduledPartsCommitThenLoad(t *testing.T) {
	b, _ := newTestBookings(t)
	parts := []orders.ScheduledPartWithoutBooking{
		{Part: "part1", Quantity: 12},
		{Part: "part2", Quantity: 52},
	}
	require.NoError(t, b.commitScheduledParts("sch1", parts))

	got, err := b.loadScheduledParts()
	require.NoError(t, err)
	assert.Equal(t, parts, got)
}

func TestScheduledPartsLoadWithoutFile(t *testing.T) {
	b, _ := newTestBookings(t)
	got, err := b.loadScheduledParts()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestScheduledPartsRecoversInterruptedCommit(t *testing.T) {
	b, dir := newTestBookings(t)
	seedBookings(t, dir)

	// simulate a crash after the temp file was written but before the rename
	tmp := filepath.Join(dir, "scheduled-parts-temp-abc.csv")
	require.NoError(t, os.WriteFile(tmp, []byte("Part,Quantity\nmypart,12\notherpart,17\n"), 0o644))

	status, err := b.LoadUnscheduledStatus(0)
	require.NoError(t, err)
	assert.Equal(t, []orders.ScheduledPartWithoutBooking{
		{Part: "mypart", Quantity: 12},
		{Part: "otherpart", Quantity: 17},
	}, status.ScheduledParts)
	assert.Len(t, status.UnscheduledBookings, 3)

	_, err = os.Stat(tmp)
	assert.True(t, os.IsNotExist(err), "temp file should have been renamed away")
	_, err = os.Stat(filepath.Join(dir, "scheduled-parts.csv"))
	assert.NoError(t, err)
}

func TestScheduledPartsRecoveryReplacesLiveFile(t *testing.T) {
	b, dir := newTestBookings(t)
	require.NoError(t, b.commitScheduledParts("old", []orders.ScheduledPartWithoutBooking{{Part: "stale", Quantity: 1}}))

	tmp := filepath.Join(dir, "scheduled-parts-temp-new.csv")
	require.NoError(t, os.WriteFile(tmp, []byte("Part,Quantity\nfresh,2\n"), 0o644))

	got, err := b.loadScheduledParts()
	require.NoError(t, err)
	assert.Equal(t, []orders.ScheduledPartWithoutBooking{{Part: "fresh", Quantity: 2}}, got)
}

func TestScheduledPartsRecoveryPicksLexicographicallyLastTemp(t *testing.T) {
	b, dir := newTestBookings(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scheduled-parts-temp-a.csv"),
		[]byte("Part,Quantity\nearly,1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scheduled-parts-temp-b.csv"),
		[]byte("Part,Quantity\nlate,2\n"), 0o644))

	got, err := b.loadScheduledParts()
	require.NoError(t, err)
	assert.Equal(t, []orders.ScheduledPartWithoutBooking{{Part: "late", Quantity: 2}}, got)
}

func TestScheduledPartsCommitReplacesWholesale(t *testing.T) {
	b, _ := newTestBookings(t)
	require.NoError(t, b.commitScheduledParts("1", []orders.ScheduledPartWithoutBooking{
		{Part: "a", Quantity: 1}, {Part: "b", Quantity: 2},
	}))
	require.NoError(t, b.commitScheduledParts("2", []orders.ScheduledPartWithoutBooking{
		{Part: "c", Quantity: 3},
	}))

	got, err := b.loadScheduledParts()
	require.NoError(t, err)
	assert.Equal(t, []orders.ScheduledPartWithoutBooking{{Part: "c", Quantity: 3}}, got)
}
