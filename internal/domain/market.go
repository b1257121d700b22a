package domain

import "fmt"

// MarketState holds the best outstanding quotes of the auction.
// Bid 0 is the always-acceptable floor and Ask == Ceiling the never-acceptable
// ceiling; both are sentinels, not real quotes.
type MarketState struct {
	Bid     int64 `json:"bid"`
	Ask     int64 `json:"ask"`
	Ceiling int64 `json:"ceiling"`
}

// NewMarketState returns a market with no standing quotes.
func NewMarketState(ceiling int64) MarketState {
	return MarketState{Bid: 0, Ask: ceiling, Ceiling: ceiling}
}

// Reset clears both sides back to the sentinels. Called after every trade.
func (m *MarketState) Reset() {
	m.Bid = 0
	m.Ask = m.Ceiling
}

// HasBid reports whether a real bid is standing.
func (m MarketState) HasBid() bool {
	return m.Bid != 0
}

// HasAsk reports whether a real ask is standing.
func (m MarketState) HasAsk() bool {
	return m.Ask != m.Ceiling
}

// Spread returns the closed integer interval [Bid, Ask].
// Panics if the book is crossed; the transition rules never allow it.
func (m MarketState) Spread() (lo, hi int64) {
	m.VerifyInvariant()
	return m.Bid, m.Ask
}

// VerifyInvariant checks that the market is within [0, Ceiling] and uncrossed.
func (m MarketState) VerifyInvariant() {
	if m.Bid > m.Ask {
		panic(fmt.Sprintf("EMPTY_SPREAD: bid=%d > ask=%d", m.Bid, m.Ask))
	}
	if m.Bid < 0 || m.Ask > m.Ceiling {
		panic(fmt.Sprintf("MARKET_OUT_OF_RANGE: bid=%d ask=%d ceiling=%d", m.Bid, m.Ask, m.Ceiling))
	}
}
