package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/mbaumer/orderlink/core/metrics"
)

func TestPromSinkRecordsOps(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	require.NoError(t, err)

	err = sink.RecordStoreOp(coremetrics.StoreOp{
		Op:       "create_schedule",
		Backend:  "csv",
		Duration: 5 * time.Millisecond,
	})
	require.NoError(t, err)

	fams, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range fams {
		names[f.GetName()] = true
	}
	assert.True(t, names["orderstore_ops_total"])
	assert.True(t, names["orderstore_op_duration_seconds"])
}

func TestPromSinkReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromSink(reg)
	require.NoError(t, err)
	sink, err := NewPromSink(reg)
	require.NoError(t, err)
	assert.NoError(t, sink.RecordStoreOp(coremetrics.StoreOp{Op: "load_unscheduled", Backend: "csv"}))
}

func TestMultiSinkForwards(t *testing.T) {
	reg := prometheus.NewRegistry()
	prom, err := NewPromSink(reg)
	require.NoError(t, err)
	multi := NewMultiSink(prom, coremetrics.NopSink{})
	assert.NoError(t, multi.RecordStoreOp(coremetrics.StoreOp{Op: "backout", Backend: "csv"}))
}
