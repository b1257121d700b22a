package strategy

import (
	"slices"
	"testing"

	"gd_auction/internal/belief"
	"gd_auction/internal/domain"
	"gd_auction/internal/ledger"

	"pgregory.net/rapid"
)

const ceiling = 1000

func TestBestPrice_TieBreak(t *testing.T) {
	t.Run("Flat payoff picks the lowest price", func(t *testing.T) {
		price, payoff, ok := bestPrice(10, 20, func(int64) float64 { return 5 })
		if !ok || price != 10 || payoff != 5 {
			t.Errorf("Expected (10, 5, true), got (%d, %v, %v)", price, payoff, ok)
		}
	})

	t.Run("Equal peaks pick the first", func(t *testing.T) {
		peaks := map[int64]float64{12: 7, 17: 7}
		price, _, ok := bestPrice(10, 20, func(p int64) float64 {
			if v, hit := peaks[p]; hit {
				return v
			}
			return 1
		})
		if !ok || price != 12 {
			t.Errorf("Expected 12, got %d", price)
		}
	})

	t.Run("No positive payoff", func(t *testing.T) {
		_, _, ok := bestPrice(0, 50, func(p int64) float64 { return -float64(p) })
		if ok {
			t.Error("Expected no profitable price")
		}
	})
}

func TestOptimizer_EmptyHistory(t *testing.T) {
	opt := NewOptimizer(ledger.New(), 0, belief.DegenerateNeutral)
	market := domain.NewMarketState(ceiling)

	t.Run("Ask above cost", func(t *testing.T) {
		q := opt.OptimalAsk(market, 140)
		if !q.Profitable() {
			t.Fatalf("Expected a profitable ask, got %+v", q)
		}
		if q.Price <= 140 || q.Price >= ceiling {
			t.Errorf("Ask %d outside (140, %d)", q.Price, ceiling)
		}
	})

	t.Run("Bid below value", func(t *testing.T) {
		q := opt.OptimalBid(market, 305)
		if !q.Profitable() {
			t.Fatalf("Expected a profitable bid, got %+v", q)
		}
		if q.Price <= 0 || q.Price >= 305 {
			t.Errorf("Bid %d outside (0, 305)", q.Price)
		}
	})

	t.Run("Unprofitable seller gets the ceiling", func(t *testing.T) {
		q := opt.OptimalAsk(market, ceiling-1)
		if q.Profitable() || q.Price != ceiling {
			t.Errorf("Expected sentinel ask, got %+v", q)
		}
	})

	t.Run("Unprofitable buyer gets zero", func(t *testing.T) {
		q := opt.OptimalBid(market, 0)
		if q.Profitable() || q.Price != 0 {
			t.Errorf("Expected sentinel bid, got %+v", q)
		}
	})
}

func TestOptimizer_ProvisionalRejectionReleased(t *testing.T) {
	l := ledger.New()
	l.Append(ledger.Asks, 250)
	l.Append(ledger.Bids, 180)
	opt := NewOptimizer(l, 0, belief.DegenerateNeutral)
	market := domain.MarketState{Bid: 180, Ask: 250, Ceiling: ceiling}

	before := l.Window(0)
	opt.OptimalAsk(market, 150)
	opt.OptimalBid(market, 280)
	after := l.Window(0)

	if !slices.Equal(before.RejectedAsks, after.RejectedAsks) || !slices.Equal(before.RejectedBids, after.RejectedBids) {
		t.Errorf("Ledger changed by optimization: before %+v, after %+v", before, after)
	}
	if len(after.RejectedAsks) != 0 || len(after.RejectedBids) != 0 {
		t.Errorf("Expected no rejections recorded, got %+v", after)
	}
}

func TestOptimizer_StandingAskCountsAsRejected(t *testing.T) {
	// With the standing ask at 400 treated as rejected, p(400) knot is 0, so
	// no seller should ask at or above it; an untouched ask would be 0/0.
	l := ledger.New()
	l.Append(ledger.Asks, 400)
	opt := NewOptimizer(l, 0, belief.DegenerateFail)
	market := domain.MarketState{Bid: 0, Ask: 400, Ceiling: ceiling}

	q := opt.OptimalAsk(market, 100)
	if !q.Profitable() || q.Price >= 400 || q.Price <= 100 {
		t.Errorf("Expected a profitable ask in (100, 400), got %+v", q)
	}
}

func TestOptimizer_MemoryWindow(t *testing.T) {
	// Epoch 0: a high bid at 800. Epoch 1: an ask at 200 that was rejected.
	l := ledger.New()
	l.Append(ledger.Bids, 800)
	l.OpenEpoch()
	l.Append(ledger.Asks, 200)
	l.Append(ledger.RejectedAsks, 200)
	market := domain.NewMarketState(ceiling)

	t.Run("Infinite memory sees the high bid", func(t *testing.T) {
		// p is 0.5 on [200, 800], so asking 800 already pays 350 while
		// nothing below 200 can pay more than 100.
		q := NewOptimizer(l, 0, belief.DegenerateFail).OptimalAsk(market, 100)
		if !q.Profitable() || q.Price < 800 {
			t.Errorf("Expected an ask at or above 800, got %+v", q)
		}
	})

	t.Run("One epoch forgets it", func(t *testing.T) {
		// Only the rejected ask remains: p(200) = 0, so the ask falls below 200.
		q := NewOptimizer(l, 1, belief.DegenerateFail).OptimalAsk(market, 100)
		if !q.Profitable() || q.Price <= 100 || q.Price >= 200 {
			t.Errorf("Expected an ask in (100, 200), got %+v", q)
		}
	})
}

func TestProperty_OptimalQuotesStayInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := ledger.New()
		price := rapid.Int64Range(1, ceiling-1)
		for _, p := range rapid.SliceOfN(price, 0, 6).Draw(t, "bids") {
			l.Append(ledger.Bids, p)
		}
		for _, p := range rapid.SliceOfN(price, 0, 6).Draw(t, "asks") {
			l.Append(ledger.Asks, p)
			l.Append(ledger.RejectedAsks, p)
		}

		bid := rapid.Int64Range(0, ceiling-2).Draw(t, "marketBid")
		ask := rapid.Int64Range(bid+1, ceiling).Draw(t, "marketAsk")
		market := domain.MarketState{Bid: bid, Ask: ask, Ceiling: ceiling}
		opt := NewOptimizer(l, 0, belief.DegenerateNeutral)

		cost := rapid.Int64Range(0, ceiling-1).Draw(t, "cost")
		q := opt.OptimalAsk(market, cost)
		if q.Profitable() {
			if q.Price < cost {
				t.Fatalf("ask %d below cost %d with payoff %v", q.Price, cost, q.Payoff)
			}
			if q.Price < bid || q.Price > ask {
				t.Fatalf("ask %d outside spread [%d, %d]", q.Price, bid, ask)
			}
		} else if q.Price != ceiling || q.Payoff != 0 {
			t.Fatalf("unprofitable ask should be the sentinel, got %+v", q)
		}

		value := rapid.Int64Range(0, ceiling-1).Draw(t, "value")
		b := opt.OptimalBid(market, value)
		if b.Profitable() {
			if b.Price > value {
				t.Fatalf("bid %d above value %d with payoff %v", b.Price, value, b.Payoff)
			}
			if b.Price < bid || b.Price > ask {
				t.Fatalf("bid %d outside spread [%d, %d]", b.Price, bid, ask)
			}
		} else if b.Price != 0 || b.Payoff != 0 {
			t.Fatalf("unprofitable bid should be the sentinel, got %+v", b)
		}
	})
}
