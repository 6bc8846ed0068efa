package orders

import "time"

// BookingDemand is one part-line of a booking. Rows are immutable once
// committed to the unscheduled ledger; changing part or quantity requires a
// new booking id.
type BookingDemand struct {
	BookingID string `json:"bookingId"`
	Part      string `json:"part"`
	Quantity  int    `json:"quantity"`
}

// Booking is a demand order for one or more parts. It is the unit of "has
// this been scheduled": once a schedule consumes it, a sentinel file named
// after the booking id shadows it forever.
type Booking struct {
	BookingID  string          `json:"bookingId"`
	DueDate    time.Time       `json:"dueDate"`
	Priority   int             `json:"priority"`
	ScheduleID string          `json:"scheduleId,omitempty"`
	Parts      []BookingDemand `json:"parts"`
}

// ScheduledPartWithoutBooking is carry-over demand from the last schedule
// that is not tied to any booking. The set is replaced wholesale on every
// schedule commit.
type ScheduledPartWithoutBooking struct {
	Part     string `json:"part"`
	Quantity int    `json:"quantity"`
}

// DownloadedPart records a part quantity sent to the machines as part of a
// schedule.
type DownloadedPart struct {
	ScheduleID string `json:"scheduleId"`
	Part       string `json:"part"`
	Quantity   int    `json:"quantity"`
}

// BackedOutPart is previously scheduled, not-yet-produced quantity being
// returned as new demand.
type BackedOutPart struct {
	Part     string `json:"part"`
	Quantity int    `json:"quantity"`
}

// NewSchedule is one batch scheduling decision handed to the store.
type NewSchedule struct {
	ScheduleID       string                        `json:"scheduleId"`
	ScheduledTimeUTC time.Time                     `json:"scheduledTimeUTC"`
	ScheduledHorizon time.Duration                 `json:"scheduledHorizon"`
	BookingIDs       []string                      `json:"bookingIds"`
	DownloadedParts  []DownloadedPart              `json:"downloadedParts"`
	ScheduledParts   []ScheduledPartWithoutBooking `json:"scheduledParts"`
}

// UnscheduledStatus is the merged view returned to the scheduling engine:
// everything not yet scheduled, the carry-over parts from the last schedule,
// and the identifier of the last applied backout. LatestBackoutID is nil when
// no backout has ever been recorded.
type UnscheduledStatus struct {
	UnscheduledBookings []Booking                     `json:"unscheduledBookings"`
	ScheduledParts      []ScheduledPartWithoutBooking `json:"scheduledParts"`
	LatestBackoutID     *int64                        `json:"latestBackoutId,omitempty"`
}
