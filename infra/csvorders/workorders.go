package csvorders

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mbaumer/orderlink/core/logger"
	"github.com/mbaumer/orderlink/core/orders"
)

const (
	workordersFile          = "workorders.csv"
	defaultFilledWorkorders = "filled-workorders"
)

// Workorders is the workorder side of the store: the unfilled ledger and the
// per-workorder fill sentinels.
type Workorders struct {
	basePath  string
	filledDir string
	clock     orders.Clock
	log       logger.Logger
}

// NewWorkorders creates the workorder ledger rooted at cfg.BasePath.
func NewWorkorders(cfg Config, clk orders.Clock, log logger.Logger) *Workorders {
	cfg.SetDefaults()
	return &Workorders{
		basePath:  cfg.BasePath,
		filledDir: cfg.FilledWorkordersDir,
		clock:     clk,
		log:       log,
	}
}

func (w *Workorders) workordersPath() string {
	return filepath.Join(w.basePath, workordersFile)
}

func (w *Workorders) sentinelPath(workorderID string) string {
	return filepath.Join(w.basePath, w.filledDir, workorderID+".csv")
}

// LoadUnfilledWorkorders implements orders.WorkorderStore.
func (w *Workorders) LoadUnfilledWorkorders(lookaheadDays int) ([]orders.Workorder, error) {
	m, err := w.loadUnfilled()
	if err != nil {
		return nil, err
	}
	var end time.Time
	if lookaheadDays > 0 {
		end = dayStart(w.clock.Now()).AddDate(0, 0, lookaheadDays)
	}
	var res []orders.Workorder
	for _, wo := range m {
		if lookaheadDays > 0 && wo.DueDate.After(end) {
			continue
		}
		res = append(res, *wo)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].WorkorderID < res[j].WorkorderID })
	return res, nil
}

// LoadUnfilledWorkordersForPart implements orders.WorkorderStore.
func (w *Workorders) LoadUnfilledWorkordersForPart(part string) ([]orders.Workorder, error) {
	m, err := w.loadUnfilled()
	if err != nil {
		return nil, err
	}
	var res []orders.Workorder
	for _, wo := range m {
		for _, p := range wo.Parts {
			if p.Part == part {
				res = append(res, *wo)
				break
			}
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].WorkorderID < res[j].WorkorderID })
	return res, nil
}

// loadUnfilled reads the unfilled ledger, grouping rows by workorder id and
// dropping every id whose fill sentinel exists.
func (w *Workorders) loadUnfilled() (map[string]*orders.Workorder, error) {
	m := map[string]*orders.Workorder{}

	f, err := os.Open(w.workordersPath())
	if errors.Is(err, os.ErrNotExist) {
		if err := w.createEmptyWorkorderFile(); err != nil {
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
		return nil, fmt.Errorf("%s: %w", workordersFile, err)
	}

	stamp := w.clock.Now().UTC().Format("2006-01-02-15-04-05")
	ordinal := 0
	for _, row := range rows {
		id := row.ID
		if id == "" {
			id = "W" + stamp + "-" + strconv.Itoa(ordinal)
			ordinal++
		}
		wo, ok := m[id]
		if !ok {
			wo = &orders.Workorder{
				WorkorderID: id,
				DueDate:     row.DueDate,
				Priority:    row.Priority,
			}
			m[id] = wo
		}
		wo.Parts = append(wo.Parts, orders.WorkorderDemand{
			WorkorderID: id,
			Part:        row.Part,
			Quantity:    row.Quantity,
		})
	}

	for id := range m {
		if _, err := os.Stat(w.sentinelPath(id)); err == nil {
			delete(m, id)
		}
	}
	return m, nil
}

func (w *Workorders) createEmptyWorkorderFile() error {
	f, err := os.Create(w.workordersPath())
	if err != nil {
		return err
	}
	if err := writeDemandRows(f, true, nil); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// MarkWorkorderFilled implements orders.WorkorderStore. The fill record gets
// one row per part. Station columns are the union of station names across the
// parts of this single call, sorted, active before elapsed; parts without a
// value for a discovered station write 0.
func (w *Workorders) MarkWorkorderFilled(workorderID string, filledUTC time.Time, res orders.WorkorderResources) error {
	if err := os.MkdirAll(filepath.Join(w.basePath, w.filledDir), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", w.filledDir, err)
	}

	activeKeys := stationUnion(res.Parts, func(p orders.WorkorderPartResources) map[string]time.Duration {
		return p.ActiveOperationTime
	})
	elapsedKeys := stationUnion(res.Parts, func(p orders.WorkorderPartResources) map[string]time.Duration {
		return p.ElapsedOperationTime
	})

	header := []string{"CompletedTimeUTC", "ID", "Part", "Quantity", "Serials"}
	for _, k := range activeKeys {
		header = append(header, "Active "+k+" (minutes)")
	}
	for _, k := range elapsedKeys {
		header = append(header, "Elapsed "+k+" (minutes)")
	}

	f, err := os.Create(w.sentinelPath(workorderID))
	if err != nil {
		return err
	}
	cw := csv.NewWriter(f)
	werr := cw.Write(header)

	ts := filledUTC.UTC().Format(timestampFormat)
	serials := strings.Join(res.Serials, ";")
	for _, p := range res.Parts {
		if werr != nil {
			break
		}
		rec := []string{ts, workorderID, p.Part, strconv.Itoa(p.PartsCompleted), serials}
		for _, k := range activeKeys {
			rec = append(rec, minuteField(p.ActiveOperationTime, k))
		}
		for _, k := range elapsedKeys {
			rec = append(rec, minuteField(p.ElapsedOperationTime, k))
		}
		werr = cw.Write(rec)
	}
	cw.Flush()
	if werr == nil {
		werr = cw.Error()
	}
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("fill record %s: %w", workorderID, werr)
	}
	return nil
}

func stationUnion(parts []orders.WorkorderPartResources, pick func(orders.WorkorderPartResources) map[string]time.Duration) []string {
	set := map[string]struct{}{}
	for _, p := range parts {
		for k := range pick(p) {
			set[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func minuteField(times map[string]time.Duration, station string) string {
	if d, ok := times[station]; ok {
		return formatMinutes(d)
	}
	return "0"
}
