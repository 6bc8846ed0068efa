package app

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mbaumer/orderlink/app/plugins"
	"github.com/mbaumer/orderlink/config"
	coremetrics "github.com/mbaumer/orderlink/core/metrics"
	"github.com/mbaumer/orderlink/core/orders"
	"github.com/mbaumer/orderlink/infra/logger"
	inframetrics "github.com/mbaumer/orderlink/infra/metrics"
)

// Service fronts the configured store backend. Every request is dispatched
// synchronously on the caller's goroutine; callers that may race schedule
// creations must serialize themselves.
type Service struct {
	store   plugins.Store
	backend string
	log     logger.Logger
	sink    coremetrics.Sink
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	factory, ok := plugins.Stores[cfg.Store.Type]
	if !ok {
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Type)
	}
	store, err := factory(cfg.Store.Type, cfg.Store.Conf, orders.SystemClock(), logg)
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", cfg.Store.Type, err)
	}

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := inframetrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, inframetrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = inframetrics.NewMultiSink(sinks...)
	}

	return &Service{store: store, backend: cfg.Store.Type, log: logg, sink: sink}, nil
}

// NewWithStore wires a Service around an already constructed store. Used by
// tests and by embedders that manage the backend themselves.
func NewWithStore(store plugins.Store, backend string, log logger.Logger, sink coremetrics.Sink) *Service {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	return &Service{store: store, backend: backend, log: log, sink: sink}
}

// Handle executes one store request and returns its result. Load requests
// return the loaded value; mutations return nil.
func (s *Service) Handle(req orders.Request) (any, error) {
	reqID := uuid.NewString()
	start := time.Now()

	var (
		op  string
		res any
		err error
	)
	switch r := req.(type) {
	case orders.LoadUnscheduled:
		op = "load_unscheduled"
		res, err = s.store.LoadUnscheduledStatus(r.LookaheadDays)
	case orders.LoadWorkorders:
		op = "load_workorders"
		if r.Part != "" {
			res, err = s.store.LoadUnfilledWorkordersForPart(r.Part)
		} else {
			res, err = s.store.LoadUnfilledWorkorders(r.LookaheadDays)
		}
	case orders.CreateScheduleRequest:
		op = "create_schedule"
		err = s.store.CreateSchedule(r.Schedule)
	case orders.BackoutWork:
		op = "backout"
		err = s.store.HandleBackedOutWork(r.BackoutID, r.Parts)
	case orders.FillWorkorder:
		op = "fill_workorder"
		err = s.store.MarkWorkorderFilled(r.WorkorderID, r.FilledUTC, r.Resources)
	default:
		return nil, fmt.Errorf("unsupported request type %T", req)
	}

	elapsed := time.Since(start)
	s.log.Debugw("store op", map[string]any{
		"request_id": reqID,
		"op":         op,
		"backend":    s.backend,
		"duration":   elapsed.String(),
		"failed":     err != nil,
	})
	if serr := s.sink.RecordStoreOp(coremetrics.StoreOp{
		Op:       op,
		Backend:  s.backend,
		Duration: elapsed,
		Failed:   err != nil,
		Time:     start,
	}); serr != nil {
		s.log.Warnf("record metrics: %v", serr)
	}
	return res, err
}

// Close releases the store backend.
func (s *Service) Close() error { return s.store.Close() }
