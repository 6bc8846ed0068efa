package orders

import "time"

// BookingStore records scheduling decisions against the booking ledger.
//
// Implementations are synchronous and single-caller: mutual exclusion across
// concurrent schedule creations must be provided by the caller, and there is
// no cancellation model. Errors are returned, never retried internally.
type BookingStore interface {
	// LoadUnscheduledStatus returns all bookings not yet consumed by a
	// schedule, the scheduled parts of the last committed schedule, and the
	// latest backout id. A positive lookaheadDays restricts bookings to those
	// due within that many days from today; zero or negative disables the
	// horizon filter.
	LoadUnscheduledStatus(lookaheadDays int) (UnscheduledStatus, error)

	// CreateSchedule records one batch scheduling decision. Retrying with
	// identical arguments reproduces identical stored state.
	CreateSchedule(s NewSchedule) error

	// HandleBackedOutWork advances the latest-backout id and re-enters the
	// backed out quantities as new high-priority bookings due today. The store
	// does not deduplicate backout ids; callers must consult
	// LoadUnscheduledStatus before redelivering.
	HandleBackedOutWork(backoutID int64, parts []BackedOutPart) error
}

// WorkorderStore records production results against the workorder ledger.
type WorkorderStore interface {
	// LoadUnfilledWorkorders returns all workorders without a fill record,
	// optionally restricted by the same due-date horizon as bookings.
	LoadUnfilledWorkorders(lookaheadDays int) ([]Workorder, error)

	// LoadUnfilledWorkordersForPart returns unfilled workorders that demand
	// the given part.
	LoadUnfilledWorkordersForPart(part string) ([]Workorder, error)

	// MarkWorkorderFilled writes the fill record for a workorder. Once
	// written the record is never rewritten.
	MarkWorkorderFilled(workorderID string, filledUTC time.Time, res WorkorderResources) error
}
