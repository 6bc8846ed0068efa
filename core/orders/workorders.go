package orders

import "time"

// WorkorderDemand is one part-line of a workorder.
type WorkorderDemand struct {
	WorkorderID string `json:"workorderId"`
	Part        string `json:"part"`
	Quantity    int    `json:"quantity"`
}

// Workorder is a demand order that is the unit of "has this been produced".
// A workorder moves from unfilled to filled when its fill sentinel appears;
// the unfilled ledger is never edited for that id afterward.
type Workorder struct {
	WorkorderID string            `json:"workorderId"`
	DueDate     time.Time         `json:"dueDate"`
	Priority    int               `json:"priority"`
	Parts       []WorkorderDemand `json:"parts"`
}

// WorkorderPartResources aggregates production results for one part of a
// filled workorder. Station-name sets may differ per part; the fill record
// unions them to build its output columns.
type WorkorderPartResources struct {
	Part                 string                   `json:"part"`
	PartsCompleted       int                      `json:"partsCompleted"`
	ElapsedOperationTime map[string]time.Duration `json:"elapsedOperationTime"`
	ActiveOperationTime  map[string]time.Duration `json:"activeOperationTime"`
}

// WorkorderResources is everything recorded when a workorder is filled.
type WorkorderResources struct {
	Serials []string                 `json:"serials"`
	Parts   []WorkorderPartResources `json:"parts"`
}
