package metrics

import coremetrics "github.com/mbaumer/orderlink/core/metrics"

// MultiSink fans store operations out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordStoreOp forwards the operation to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordStoreOp(op coremetrics.StoreOp) error {
	for _, s := range m.Sinks {
		if err := s.RecordStoreOp(op); err != nil {
			return err
		}
	}
	return nil
}
