package domain

import "testing"

func TestMarketState_Reset(t *testing.T) {
	m := NewMarketState(1000)
	if m.Bid != 0 || m.Ask != 1000 {
		t.Fatalf("Expected (0, 1000), got (%d, %d)", m.Bid, m.Ask)
	}
	if m.HasBid() || m.HasAsk() {
		t.Error("Fresh market should have no standing quotes")
	}

	m.Bid, m.Ask = 200, 250
	if !m.HasBid() || !m.HasAsk() {
		t.Error("Expected standing quotes on both sides")
	}

	m.Reset()
	if m.Bid != 0 || m.Ask != 1000 {
		t.Errorf("Expected reset to (0, 1000), got (%d, %d)", m.Bid, m.Ask)
	}
}

func TestMarketState_Spread(t *testing.T) {
	t.Run("Valid spread", func(t *testing.T) {
		m := MarketState{Bid: 10, Ask: 20, Ceiling: 100}
		lo, hi := m.Spread()
		if lo != 10 || hi != 20 {
			t.Errorf("Expected [10, 20], got [%d, %d]", lo, hi)
		}
	})

	t.Run("Crossed book panics", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Spread should panic when bid > ask")
			}
		}()
		m := MarketState{Bid: 30, Ask: 20, Ceiling: 100}
		m.Spread()
	})

	t.Run("Ask above ceiling panics", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("VerifyInvariant should panic when ask > ceiling")
			}
		}()
		m := MarketState{Bid: 0, Ask: 101, Ceiling: 100}
		m.VerifyInvariant()
	})
}

func TestNewPools(t *testing.T) {
	buyers, sellers := NewPools([]int64{225, 260}, []int64{140, 165, 190})

	if len(buyers) != 2 || len(sellers) != 3 {
		t.Fatalf("Expected 2 buyers and 3 sellers, got %d and %d", len(buyers), len(sellers))
	}
	if buyers[1].ID != 1 || buyers[1].Reservation != 260 || !buyers[1].IsBuyer() {
		t.Errorf("Unexpected buyer: %+v", buyers[1])
	}
	if sellers[0].ID != 2 || sellers[0].Reservation != 140 || sellers[0].IsBuyer() {
		t.Errorf("Unexpected seller: %+v", sellers[0])
	}
}

func TestRoundStatistics_RecordTrade(t *testing.T) {
	var r RoundStatistics
	r.RecordTrade(200, 260, 165)
	r.RecordTrade(210, 225, 190)

	if r.Trades != 2 || len(r.Prices) != 2 {
		t.Fatalf("Expected 2 trades, got %d", r.Trades)
	}
	// (260-165) + (225-190) = 95 + 35
	if r.Surplus() != 130 {
		t.Errorf("Expected surplus 130, got %d", r.Surplus())
	}
}
