package strategy

import (
	"gd_auction/internal/domain"
)

// Quote is a trader's chosen price and the expected payoff of posting it.
// A zero payoff means the trader has no profitable action and Price is the
// side's sentinel (0 for a bid, the ceiling for an ask).
type Quote struct {
	Price  int64
	Payoff float64
}

// Profitable reports whether posting the quote is expected to gain anything.
func (q Quote) Profitable() bool {
	return q.Payoff > 0
}

// Quoter is the interface the engine uses to ask traders for their best quote.
// It is called synchronously by the Sequencer.
type Quoter interface {
	// OptimalBid returns the bid maximizing (value - b) * q(b) over the spread.
	OptimalBid(market domain.MarketState, value int64) Quote
	// OptimalAsk returns the ask maximizing (a - cost) * p(a) over the spread.
	OptimalAsk(market domain.MarketState, cost int64) Quote
}
