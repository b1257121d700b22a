package strategy

import (
	"testing"

	"gd_auction/internal/belief"
	"gd_auction/internal/domain"
	"gd_auction/internal/ledger"
)

// BenchmarkOptimizer_OptimalAsk measures one full brute-force search over an
// open spread, the unit of work repeated for every trader on every move.
func BenchmarkOptimizer_OptimalAsk(b *testing.B) {
	l := ledger.New()
	for i := int64(0); i < 40; i++ {
		l.Append(ledger.Bids, 150+i)
		l.Append(ledger.Asks, 260+i)
		l.Append(ledger.RejectedAsks, 260+i)
	}
	opt := NewOptimizer(l, 0, belief.DegenerateNeutral)
	market := domain.MarketState{Bid: 189, Ask: 299, Ceiling: 1000}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		opt.OptimalAsk(market, 165)
	}
}

// BenchmarkOptimizer_EmptyBook measures the widest search, over [0, ceiling].
func BenchmarkOptimizer_EmptyBook(b *testing.B) {
	opt := NewOptimizer(ledger.New(), 0, belief.DegenerateNeutral)
	market := domain.NewMarketState(1000)

	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		opt.OptimalBid(market, 305)
	}
}
