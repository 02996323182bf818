package generation

import (
	"sync/atomic"
	"time"
)

// Metrics tracks generation call metrics
type Metrics struct {
	Calls     int64 `json:"calls"`
	Errors    int64 `json:"errors"`
	LatencyNs int64 `json:"-"`
}

var globalMetrics = &Metrics{}

// GetMetrics returns the current metrics snapshot
func GetMetrics() Metrics {
	return Metrics{
		Calls:     atomic.LoadInt64(&globalMetrics.Calls),
		Errors:    atomic.LoadInt64(&globalMetrics.Errors),
		LatencyNs: atomic.LoadInt64(&globalMetrics.LatencyNs),
	}
}

// ResetMetrics resets all metrics (useful for testing)
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.Calls, 0)
	atomic.StoreInt64(&globalMetrics.Errors, 0)
	atomic.StoreInt64(&globalMetrics.LatencyNs, 0)
}

func recordCall(duration time.Duration, err error) {
	atomic.AddInt64(&globalMetrics.Calls, 1)
	atomic.AddInt64(&globalMetrics.LatencyNs, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&globalMetrics.Errors, 1)
	}
}

// AverageLatencyMs returns the average latency in milliseconds
func (m Metrics) AverageLatencyMs() float64 {
	if m.Calls == 0 {
		return 0
	}
	return float64(m.LatencyNs) / float64(m.Calls) / 1e6
}

// ErrorRate returns the error rate as a percentage
func (m Metrics) ErrorRate() float64 {
	if m.Calls == 0 {
		return 0
	}
	return float64(m.Errors) / float64(m.Calls) * 100
}
