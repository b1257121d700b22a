package engine

import (
	"fmt"
	"slices"

	"gd_auction/internal/domain"
	"gd_auction/internal/ledger"
)

// Session is the mutable simulation context threaded through every engine
// call: the book, the shared history, the live pools and the round's stats.
// Nothing in the engine keeps state outside it.
type Session struct {
	Market  domain.MarketState
	Ledger  *ledger.Ledger
	Buyers  []domain.Trader
	Sellers []domain.Trader

	// Authors of the standing quotes, NoTrader when the side is a sentinel.
	ActiveBidder domain.TraderID
	ActiveSeller domain.TraderID

	Stats domain.RoundStatistics

	memory int // epochs visible in snapshots
}

// NewSession creates a session over l with a memory window of memory epochs
// (<= 0 is infinite).
func NewSession(ceiling int64, l *ledger.Ledger, memory int) *Session {
	return &Session{
		Market:       domain.NewMarketState(ceiling),
		Ledger:       l,
		ActiveBidder: domain.NoTrader,
		ActiveSeller: domain.NoTrader,
		memory:       memory,
	}
}

// StartRound installs fresh copies of the pools and clears the book and stats.
// The ledger is left alone; whether history carries over is the caller's call.
func (s *Session) StartRound(round int, buyers, sellers []domain.Trader) {
	s.Buyers = slices.Clone(buyers)
	s.Sellers = slices.Clone(sellers)
	s.Market.Reset()
	s.ActiveBidder = domain.NoTrader
	s.ActiveSeller = domain.NoTrader
	s.Stats = domain.RoundStatistics{Round: round}
}

// PoolSizes returns the number of live buyers and sellers.
func (s *Session) PoolSizes() (buyers, sellers int) {
	return len(s.Buyers), len(s.Sellers)
}

// Buyer looks up a live buyer by id.
func (s *Session) Buyer(id domain.TraderID) (domain.Trader, bool) {
	i := indexOf(s.Buyers, id)
	if i < 0 {
		return domain.Trader{}, false
	}
	return s.Buyers[i], true
}

// Seller looks up a live seller by id.
func (s *Session) Seller(id domain.TraderID) (domain.Trader, bool) {
	i := indexOf(s.Sellers, id)
	if i < 0 {
		return domain.Trader{}, false
	}
	return s.Sellers[i], true
}

func indexOf(pool []domain.Trader, id domain.TraderID) int {
	return slices.IndexFunc(pool, func(t domain.Trader) bool { return t.ID == id })
}

// State is a point-in-time copy of the session, for post-mortem logging.
type State struct {
	Market       domain.MarketState     `json:"market"`
	Epoch        int                    `json:"epoch"`
	Buyers       []domain.Trader        `json:"buyers"`
	Sellers      []domain.Trader        `json:"sellers"`
	ActiveBidder domain.TraderID        `json:"active_bidder"`
	ActiveSeller domain.TraderID        `json:"active_seller"`
	Stats        domain.RoundStatistics `json:"stats"`
	Window       ledger.Window          `json:"window"`
}

// Snapshot returns a detached copy of the session state.
func (s *Session) Snapshot() State {
	return State{
		Market:       s.Market,
		Epoch:        s.Ledger.Epoch(),
		Buyers:       slices.Clone(s.Buyers),
		Sellers:      slices.Clone(s.Sellers),
		ActiveBidder: s.ActiveBidder,
		ActiveSeller: s.ActiveSeller,
		Stats:        s.Stats,
		Window:       s.Ledger.Window(s.memory),
	}
}

// String summarizes the session for log lines.
func (s *Session) String() string {
	return fmt.Sprintf("round=%d epoch=%d bid=%d ask=%d buyers=%d sellers=%d",
		s.Stats.Round, s.Ledger.Epoch(), s.Market.Bid, s.Market.Ask, len(s.Buyers), len(s.Sellers))
}
