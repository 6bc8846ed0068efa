package metrics

import "time"

// StoreOp describes one completed store operation for observability purposes.
type StoreOp struct {
	Op       string
	Backend  string
	Duration time.Duration
	Failed   bool
	Time     time.Time
}

// Sink records store operations.
type Sink interface {
	RecordStoreOp(op StoreOp) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordStoreOp(StoreOp) error { return nil }

// Config holds exporter settings shared by the metric sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults fills in values for fields left empty.
func (c *Config) SetDefaults() {
	if c.PrometheusPort == "" {
		c.PrometheusPort = "2112"
	}
}
