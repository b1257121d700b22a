package engine

import (
	"math/rand/v2"

	"gd_auction/internal/domain"
	"gd_auction/internal/strategy"
)

// Candidate is a live trader together with its best quote on the current book.
type Candidate struct {
	Trader domain.Trader
	Quote  strategy.Quote
}

// Selector picks the next mover with probability proportional to the payoff
// each live trader expects from moving.
type Selector struct {
	quoter strategy.Quoter
	rng    *rand.Rand
}

// NewSelector creates a selector drawing from rng.
func NewSelector(q strategy.Quoter, rng *rand.Rand) *Selector {
	return &Selector{quoter: q, rng: rng}
}

// Candidates quotes every live trader, buyers first then sellers.
// Quotes are computed one at a time so no evaluation sees another's
// provisional ledger entries.
func (s *Selector) Candidates(sess *Session) []Candidate {
	out := make([]Candidate, 0, len(sess.Buyers)+len(sess.Sellers))
	for _, b := range sess.Buyers {
		out = append(out, Candidate{Trader: b, Quote: s.quoter.OptimalBid(sess.Market, b.Reservation)})
	}
	for _, sl := range sess.Sellers {
		out = append(out, Candidate{Trader: sl, Quote: s.quoter.OptimalAsk(sess.Market, sl.Reservation)})
	}
	return out
}

// Choose draws the next mover. ok is false when no live trader expects a
// positive payoff, which ends the round.
func (s *Selector) Choose(sess *Session) (mover domain.Trader, ok bool) {
	cands := s.Candidates(sess)
	weights := Distribution(cands)
	if weights == nil {
		return domain.Trader{}, false
	}
	return cands[draw(s.rng, weights)].Trader, true
}

// Distribution normalizes candidate payoffs into selection probabilities.
// It returns nil when the payoffs sum to zero.
func Distribution(cands []Candidate) []float64 {
	var total float64
	for _, c := range cands {
		total += c.Quote.Payoff
	}
	if total <= 0 {
		return nil
	}

	out := make([]float64, len(cands))
	for i, c := range cands {
		out[i] = c.Quote.Payoff / total
	}
	return out
}

// draw samples an index from a distribution summing to one.
func draw(rng *rand.Rand, weights []float64) int {
	r := rng.Float64()
	last := -1
	var acc float64
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		last = i
		if r < acc {
			return i
		}
	}
	// rounding left r just above the final cumulative sum
	return last
}
