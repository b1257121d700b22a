package infra

import (
	"testing"
)

func TestMetrics_RecordMove(t *testing.T) {
	m := &Metrics{}

	m.RecordMove(1000)
	m.RecordMove(2000)
	m.RecordMove(3000)

	snap := m.Snapshot()

	if snap.MovesProcessed != 3 {
		t.Errorf("Expected 3 moves, got %d", snap.MovesProcessed)
	}

	// Average latency: (1000 + 2000 + 3000) / 3 = 2000
	if snap.AvgLatencyNs != 2000 {
		t.Errorf("Expected avg latency 2000, got %d", snap.AvgLatencyNs)
	}
}

func TestMetrics_Outcomes(t *testing.T) {
	m := &Metrics{}

	m.RecordQuote()
	m.RecordQuote()
	m.RecordTrade()
	m.RecordPass()
	m.RecordHalt()
	m.SetLiveTraders(6)

	snap := m.Snapshot()
	if snap.QuotesPosted != 2 || snap.TradesExecuted != 1 || snap.Passes != 1 {
		t.Errorf("Unexpected outcome counters %+v", snap)
	}
	if snap.RoundsHalted != 1 {
		t.Errorf("Expected 1 halted round, got %d", snap.RoundsHalted)
	}
	if snap.LiveTraders != 6 {
		t.Errorf("Expected 6 live traders, got %d", snap.LiveTraders)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := &Metrics{}

	m.RecordMove(1000)
	m.RecordError()
	m.RecordTrade()
	m.SetLiveTraders(4)

	m.Reset()
	snap := m.Snapshot()

	if snap.MovesProcessed != 0 {
		t.Error("Expected 0 moves after reset")
	}
	if snap.ErrorsTotal != 0 {
		t.Error("Expected 0 errors after reset")
	}
	if snap.TradesExecuted != 0 || snap.LiveTraders != 0 {
		t.Error("Expected trades and live traders cleared after reset")
	}
}
