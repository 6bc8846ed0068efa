package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/mbaumer/orderlink/core/metrics"
)

// PromSink records store operations in Prometheus metrics.
type PromSink struct {
	ops      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPromSink registers store metrics on the provided Prometheus registerer.
// If reg is nil, the default registerer is used. If the collectors are
// already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orderstore_ops_total",
		Help: "Total number of order store operations",
	}, []string{"op", "backend", "success"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orderstore_op_duration_seconds",
		Help:    "Duration of order store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"op", "backend"})

	if err := reg.Register(ops); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			ops = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{ops: ops, duration: duration}, nil
}

// RecordStoreOp increments the operation counter and observes its duration.
func (s *PromSink) RecordStoreOp(op coremetrics.StoreOp) error {
	s.ops.WithLabelValues(op.Op, op.Backend, strconv.FormatBool(!op.Failed)).Inc()
	s.duration.WithLabelValues(op.Op, op.Backend).Observe(op.Duration.Seconds())
	return nil
}
