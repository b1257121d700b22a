// Package belief turns quote history into acceptance probabilities.
//
// Sellers believe an ask a is accepted with probability
//
//	p(a) = (TAG(a) + BG(a)) / (TAG(a) + BG(a) + RAL(a))
//
// where TAG counts accepted asks >= a, BG submitted bids >= a and RAL rejected
// asks <= a. Buyers mirror this with
//
//	q(b) = (TBL(b) + AL(b)) / (TBL(b) + AL(b) + RBG(b))
//
// over accepted bids <= b, submitted asks <= b and rejected bids >= b. The
// ratios are only known at observed prices (the union set); between them the
// belief follows a clamped cubic.
package belief

import (
	"fmt"
	"slices"
	"sort"

	"gd_auction/internal/domain"
	"gd_auction/internal/ledger"
)

// DegeneratePolicy decides what a 0/0 empirical ratio evaluates to.
type DegeneratePolicy int

const (
	// DegenerateNeutral treats a price with no evidence as a coin flip.
	DegenerateNeutral DegeneratePolicy = iota
	// DegenerateFail panics; use it to catch histories that should never occur.
	DegenerateFail
)

// NeutralBelief is the value DegenerateNeutral assigns to a 0/0 ratio.
const NeutralBelief = 0.5

// ParseDegeneratePolicy maps a config value to a policy.
func ParseDegeneratePolicy(s string) (DegeneratePolicy, error) {
	switch s {
	case "", "neutral":
		return DegenerateNeutral, nil
	case "fail":
		return DegenerateFail, nil
	default:
		return DegenerateNeutral, fmt.Errorf("%w: %q", domain.ErrInvalidPolicy, s)
	}
}

// Estimator evaluates both belief functions over a fixed history and market.
// It is immutable once built, so repeated evaluation is idempotent.
type Estimator struct {
	market domain.MarketState
	policy DegeneratePolicy

	// sorted copies of the window, for counting by binary search
	bids, asks                 []int64
	acceptedBids, rejectedBids []int64
	acceptedAsks, rejectedAsks []int64

	knots []int64 // sorted union set
}

// New builds an estimator from a ledger window and the current market.
func New(w ledger.Window, market domain.MarketState, policy DegeneratePolicy) *Estimator {
	return &Estimator{
		market:       market,
		policy:       policy,
		bids:         sorted(w.Bids),
		asks:         sorted(w.Asks),
		acceptedBids: sorted(w.AcceptedBids),
		rejectedBids: sorted(w.RejectedBids),
		acceptedAsks: sorted(w.AcceptedAsks),
		rejectedAsks: sorted(w.RejectedAsks),
		knots:        sorted(w.Union(market.Ceiling)),
	}
}

func sorted(s []int64) []int64 {
	out := slices.Clone(s)
	slices.Sort(out)
	return out
}

// countGE counts elements of sorted s that are >= x.
func countGE(s []int64, x int64) int {
	return len(s) - sort.Search(len(s), func(i int) bool { return s[i] >= x })
}

// countLE counts elements of sorted s that are <= x.
func countLE(s []int64, x int64) int {
	return sort.Search(len(s), func(i int) bool { return s[i] > x })
}

func (e *Estimator) ratio(hits, misses int, side string, price int64) float64 {
	den := hits + misses
	if den == 0 {
		if e.policy == DegenerateFail {
			panic(fmt.Sprintf("BELIEF_DEGENERATE_RATIO: %s belief at %d has no evidence", side, price))
		}
		return NeutralBelief
	}
	return float64(hits) / float64(den)
}

// AskKnot is the empirical seller belief at an observed price.
func (e *Estimator) AskKnot(a int64) float64 {
	switch {
	case a <= 0:
		return 1
	case a >= e.market.Ceiling:
		return 0
	}
	tag := countGE(e.acceptedAsks, a)
	bg := countGE(e.bids, a)
	ral := countLE(e.rejectedAsks, a)
	return e.ratio(tag+bg, ral, "ask", a)
}

// BidKnot is the empirical buyer belief at an observed price.
func (e *Estimator) BidKnot(b int64) float64 {
	switch {
	case b <= 0:
		return 0
	case b >= e.market.Ceiling:
		return 1
	}
	tbl := countLE(e.acceptedBids, b)
	al := countLE(e.asks, b)
	rbg := countGE(e.rejectedBids, b)
	return e.ratio(tbl+al, rbg, "bid", b)
}

// AskProbability is p(a), the probability that an ask at a is accepted.
func (e *Estimator) AskProbability(a float64) float64 {
	switch {
	case a <= float64(e.market.Bid):
		return 1
	case a >= float64(e.market.Ask):
		return 0
	}
	return e.interpolate(a, e.AskKnot)
}

// BidProbability is q(b), the probability that a bid at b is accepted.
func (e *Estimator) BidProbability(b float64) float64 {
	switch {
	case b <= float64(e.market.Bid):
		return 0
	case b >= float64(e.market.Ask):
		return 1
	}
	return e.interpolate(b, e.BidKnot)
}

// interpolate evaluates knot at x when x is an observed price, otherwise the
// clamped cubic between the nearest knots around x.
func (e *Estimator) interpolate(x float64, knot func(int64) float64) float64 {
	i := sort.Search(len(e.knots), func(i int) bool { return float64(e.knots[i]) >= x })
	if i < len(e.knots) && float64(e.knots[i]) == x {
		return knot(e.knots[i])
	}

	lower, higher := int64(0), e.market.Ceiling
	if i > 0 {
		lower = e.knots[i-1]
	}
	if i < len(e.knots) {
		higher = e.knots[i]
	}
	return clampedCubic(float64(lower), knot(lower), float64(higher), knot(higher), x)
}
