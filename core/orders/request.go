package orders

import "time"

// Request is one operation against the store. The concrete types below form a
// closed set; exactly one is constructed per call, so an empty or doubly-set
// request cannot be expressed.
type Request interface {
	isRequest()
}

// LoadUnscheduled asks for the merged unscheduled status.
type LoadUnscheduled struct {
	LookaheadDays int
}

// LoadWorkorders asks for unfilled workorders. When Part is set the result is
// filtered to workorders demanding that part and LookaheadDays is ignored.
type LoadWorkorders struct {
	LookaheadDays int
	Part          string
}

// CreateScheduleRequest records a new schedule.
type CreateScheduleRequest struct {
	Schedule NewSchedule
}

// BackoutWork re-enters backed out quantities as new demand.
type BackoutWork struct {
	BackoutID int64
	Parts     []BackedOutPart
}

// FillWorkorder records the fill result for one workorder.
type FillWorkorder struct {
	WorkorderID string
	FilledUTC   time.Time
	Resources   WorkorderResources
}

func (LoadUnscheduled) isRequest()       {}
func (LoadWorkorders) isRequest()        {}
func (CreateScheduleRequest) isRequest() {}
func (BackoutWork) isRequest()           {}
func (FillWorkorder) isRequest()         {}
