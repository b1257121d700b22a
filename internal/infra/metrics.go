package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Counters
	movesProcessed atomic.Uint64
	quotesPosted   atomic.Uint64
	tradesExecuted atomic.Uint64
	passes         atomic.Uint64
	roundsHalted   atomic.Uint64
	errorsTotal    atomic.Uint64

	// Latency tracking
	latencySumNs atomic.Int64
	latencyCount atomic.Uint64

	// Gauges
	liveTraders atomic.Int32
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordMove records a processed move with latency.
func (m *Metrics) RecordMove(latencyNs int64) {
	m.movesProcessed.Add(1)
	m.latencySumNs.Add(latencyNs)
	m.latencyCount.Add(1)
}

// RecordQuote records a bid or ask that improved the book.
func (m *Metrics) RecordQuote() {
	m.quotesPosted.Add(1)
}

// RecordTrade records an executed trade.
func (m *Metrics) RecordTrade() {
	m.tradesExecuted.Add(1)
}

// RecordPass records a move that changed nothing.
func (m *Metrics) RecordPass() {
	m.passes.Add(1)
}

// RecordHalt records a round that ended before its move budget.
func (m *Metrics) RecordHalt() {
	m.roundsHalted.Add(1)
}

// RecordError records an error occurrence.
func (m *Metrics) RecordError() {
	m.errorsTotal.Add(1)
}

// SetLiveTraders sets the current number of live traders on both sides.
func (m *Metrics) SetLiveTraders(count int32) {
	m.liveTraders.Store(count)
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	MovesProcessed uint64
	QuotesPosted   uint64
	TradesExecuted uint64
	Passes         uint64
	RoundsHalted   uint64
	ErrorsTotal    uint64
	AvgLatencyNs   int64
	LiveTraders    int32
	Timestamp      time.Time
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	var avgLatency int64
	count := m.latencyCount.Load()
	if count > 0 {
		avgLatency = m.latencySumNs.Load() / int64(count)
	}

	return MetricsSnapshot{
		MovesProcessed: m.movesProcessed.Load(),
		QuotesPosted:   m.quotesPosted.Load(),
		TradesExecuted: m.tradesExecuted.Load(),
		Passes:         m.passes.Load(),
		RoundsHalted:   m.roundsHalted.Load(),
		ErrorsTotal:    m.errorsTotal.Load(),
		AvgLatencyNs:   avgLatency,
		LiveTraders:    m.liveTraders.Load(),
		Timestamp:      time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.movesProcessed.Store(0)
	m.quotesPosted.Store(0)
	m.tradesExecuted.Store(0)
	m.passes.Store(0)
	m.roundsHalted.Store(0)
	m.errorsTotal.Store(0)
	m.latencySumNs.Store(0)
	m.latencyCount.Store(0)
	m.liveTraders.Store(0)
}
