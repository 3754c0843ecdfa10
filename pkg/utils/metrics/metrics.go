// Package metrics collects per-operation counters and latencies for the API client.
package metrics

import (
	"encoding/json"
	"io"
	"sort"
	"sync"
	"time"
)

// MetricType represents the type of metric being collected
type MetricType string

const (
	// TypeLatency represents timing metrics
	TypeLatency MetricType = "latency"
	// TypeCounter represents count-based metrics
	TypeCounter MetricType = "counter"
	// TypeGauge represents current value metrics
	TypeGauge MetricType = "gauge"
)

// Common metric names for consistent tracking
const (
	MetricTwitterRequests = "twitter_api_requests"
	MetricTwitterErrors   = "twitter_api_errors"
	MetricLogin           = "twitter_login"
)

// MetricValue represents a collected metric with its type and value.
// Latency values are milliseconds of the most recent observation; Count is
// the number of observations folded into the metric.
type MetricValue struct {
	Type    MetricType `json:"type"`
	Value   int64      `json:"value"`
	Count   int64      `json:"count,omitempty"`
	TotalMs int64      `json:"total_ms,omitempty"`
}

// MetricsCollector manages the collection of metrics. It is safe for concurrent use.
type MetricsCollector struct {
	mu      sync.RWMutex
	metrics map[string]MetricValue
}

// NewMetricsCollector creates a new MetricsCollector instance
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		metrics: make(map[string]MetricValue),
	}
}

// RecordLatency records a timing observation for an operation.
func (m *MetricsCollector) RecordLatency(operation string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := operation + "_latency"
	metric := m.metrics[key]
	metric.Type = TypeLatency
	metric.Value = duration.Milliseconds()
	metric.Count++
	metric.TotalMs += duration.Milliseconds()
	m.metrics[key] = metric
}

// IncrementCounter increments a counter metric
func (m *MetricsCollector) IncrementCounter(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := name + "_counter"
	metric := m.metrics[key]
	metric.Type = TypeCounter
	metric.Value++
	m.metrics[key] = metric
}

// SetGauge sets a gauge metric to a specific value
func (m *MetricsCollector) SetGauge(name string, value int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics[name+"_gauge"] = MetricValue{
		Type:  TypeGauge,
		Value: value,
	}
}

// GetMetrics returns a snapshot of all collected metrics
func (m *MetricsCollector) GetMetrics() map[string]MetricValue {
	m.mu.RLock()
	defer m.mu.RUnlock()
	metrics := make(map[string]MetricValue, len(m.metrics))
	for k, v := range m.metrics {
		metrics[k] = v
	}
	return metrics
}

// Names returns the collected metric keys in sorted order.
func (m *MetricsCollector) Names() []string {
	snapshot := m.GetMetrics()
	names := make([]string, 0, len(snapshot))
	for k := range snapshot {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// WriteJSON writes the current snapshot as an indented JSON object.
func (m *MetricsCollector) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m.GetMetrics())
}

// WithLatencyTracking wraps a function with latency tracking
func (m *MetricsCollector) WithLatencyTracking(operation string, fn func() error) error {
	start := time.Now()
	err := fn()
	m.RecordLatency(operation, time.Since(start))
	return err
}
