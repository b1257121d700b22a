package strategy

import (
	"gd_auction/internal/belief"
	"gd_auction/internal/domain"
	"gd_auction/internal/ledger"
)

// Optimizer finds payoff-maximizing quotes by brute force over the spread.
// It reads beliefs from the shared ledger through a memory window.
type Optimizer struct {
	ledger *ledger.Ledger
	memory int // epochs; <= 0 is infinite
	policy belief.DegeneratePolicy
}

// NewOptimizer creates an optimizer over l.
func NewOptimizer(l *ledger.Ledger, memory int, policy belief.DegeneratePolicy) *Optimizer {
	return &Optimizer{
		ledger: l,
		memory: memory,
		policy: policy,
	}
}

// OptimalAsk searches every integer ask in [market.Bid, market.Ask].
// Being asked to quote implies the standing ask was not taken, so it counts as
// rejected for the duration of the search only.
func (o *Optimizer) OptimalAsk(market domain.MarketState, cost int64) Quote {
	lo, hi := market.Spread()

	if market.HasAsk() {
		release := o.ledger.Provisional(ledger.RejectedAsks, market.Ask)
		defer release()
	}
	est := belief.New(o.ledger.Window(o.memory), market, o.policy)

	price, payoff, ok := bestPrice(lo, hi, func(a int64) float64 {
		return float64(a-cost) * est.AskProbability(float64(a))
	})
	if !ok {
		return Quote{Price: market.Ceiling, Payoff: 0}
	}
	return Quote{Price: price, Payoff: payoff}
}

// OptimalBid mirrors OptimalAsk for a buyer with the given value.
func (o *Optimizer) OptimalBid(market domain.MarketState, value int64) Quote {
	lo, hi := market.Spread()

	if market.HasBid() {
		release := o.ledger.Provisional(ledger.RejectedBids, market.Bid)
		defer release()
	}
	est := belief.New(o.ledger.Window(o.memory), market, o.policy)

	price, payoff, ok := bestPrice(lo, hi, func(b int64) float64 {
		return float64(value-b) * est.BidProbability(float64(b))
	})
	if !ok {
		return Quote{Price: 0, Payoff: 0}
	}
	return Quote{Price: price, Payoff: payoff}
}

// bestPrice scans lo..hi ascending and returns the first price reaching the
// maximum payoff. ok is false when no price pays more than zero.
func bestPrice(lo, hi int64, payoff func(int64) float64) (price int64, best float64, ok bool) {
	price = lo
	best = payoff(lo)
	for p := lo + 1; p <= hi; p++ {
		if v := payoff(p); v > best {
			price, best = p, v
		}
	}
	if best <= 0 {
		return 0, 0, false
	}
	return price, best, true
}
