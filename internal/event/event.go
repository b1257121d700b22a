// Package event defines the records the engine emits for every move.
package event

import (
	"gd_auction/internal/domain"
)

// Kind is the outcome of a single move.
type Kind int

const (
	KindPass Kind = iota // mover had no profitable quote, nothing changed
	KindBid              // buyer improved the market bid
	KindAsk              // seller improved the market ask
	KindTrade            // mover accepted the standing opposite quote
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindPass:
		return "PASS"
	case KindBid:
		return "BID"
	case KindAsk:
		return "ASK"
	case KindTrade:
		return "TRADE"
	default:
		return "UNKNOWN"
	}
}

// Move is one applied move, in the order the engine applied it.
// Seq is strictly increasing across the whole run, starting at 1.
type Move struct {
	Seq    uint64          `json:"seq"`
	Round  int             `json:"round"`
	Kind   Kind            `json:"kind"`
	Trader domain.TraderID `json:"trader"`
	Role   domain.Role     `json:"role"`
	Price  int64           `json:"price"`
	Payoff float64         `json:"payoff"`

	// Set only for trades.
	Counterparty domain.TraderID `json:"counterparty"`
	Value        int64           `json:"value"`
	Cost         int64           `json:"cost"`

	// Market after the move was applied.
	Market domain.MarketState `json:"market"`
}

// IsTrade reports whether the move closed a deal.
func (m Move) IsTrade() bool {
	return m.Kind == KindTrade
}

// Observer receives every move synchronously, on the engine's goroutine.
type Observer func(Move)
