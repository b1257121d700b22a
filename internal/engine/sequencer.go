package engine

import (
	"fmt"
	"log/slog"

	"gd_auction/internal/domain"
	"gd_auction/internal/event"
	"gd_auction/internal/ledger"
	"gd_auction/internal/strategy"
)

// Sequencer is the auction state machine. It applies one move at a time to
// the session, so every read of the ledger happens strictly in move order.
// It is not safe for concurrent use.
type Sequencer struct {
	session  *Session
	quoter   strategy.Quoter
	selector *Selector
	replacer *Replacer
	nextSeq  uint64

	// Boundary: notified after every applied move
	onMove event.Observer
}

// NewSequencer creates a new sequencer over sess.
func NewSequencer(sess *Session, q strategy.Quoter, sel *Selector, rep *Replacer, onMove event.Observer) *Sequencer {
	return &Sequencer{
		session:  sess,
		quoter:   q,
		selector: sel,
		replacer: rep,
		nextSeq:  1,
		onMove:   onMove,
	}
}

// Session returns the session the sequencer mutates.
func (s *Sequencer) Session() *Session {
	return s.session
}

// NextSeq returns the sequence number the next move will carry.
func (s *Sequencer) NextSeq() uint64 {
	return s.nextSeq
}

// Step draws a mover and applies its move. ok is false when no live trader
// expects a positive payoff; the session is left untouched in that case.
func (s *Sequencer) Step() (mv event.Move, ok bool) {
	mover, ok := s.selector.Choose(s.session)
	if !ok {
		return event.Move{}, false
	}
	return s.Apply(mover), true
}

// Apply lets mover quote on the current book and applies the outcome.
func (s *Sequencer) Apply(mover domain.Trader) event.Move {
	sess := s.session

	var mv event.Move
	switch mover.Role {
	case domain.RoleBuyer:
		mv = s.applyBid(mover)
	case domain.RoleSeller:
		mv = s.applyAsk(mover)
	default:
		panic(fmt.Sprintf("UNKNOWN_ROLE: trader %d has role %d", mover.ID, mover.Role))
	}

	sess.Stats.Moves++
	sess.Market.VerifyInvariant()

	mv.Seq = s.nextSeq
	mv.Round = sess.Stats.Round
	mv.Market = sess.Market
	s.nextSeq++

	slog.Debug("MOVE",
		slog.Uint64("seq", mv.Seq),
		slog.String("kind", mv.Kind.String()),
		slog.Int("trader", int(mv.Trader)),
		slog.Int64("price", mv.Price),
		slog.Int64("bid", sess.Market.Bid),
		slog.Int64("ask", sess.Market.Ask),
	)

	if s.onMove != nil {
		s.onMove(mv)
	}
	return mv
}

func (s *Sequencer) applyBid(buyer domain.Trader) event.Move {
	sess := s.session
	m := &sess.Market

	// Called to move, so the standing bid was not taken.
	if m.HasBid() {
		sess.Ledger.Append(ledger.RejectedBids, m.Bid)
	}

	q := s.quoter.OptimalBid(*m, buyer.Reservation)
	mv := newMove(buyer, q)

	switch {
	case m.HasAsk() && q.Price == m.Ask:
		seller, ok := sess.Seller(sess.ActiveSeller)
		if !ok {
			panic(fmt.Sprintf("COUNTERPARTY_MISSING: ask %d has no live author (active seller %d)", m.Ask, sess.ActiveSeller))
		}
		s.trade(buyer, seller, q.Price, ledger.AcceptedAsks)
		markTrade(&mv, seller.ID, buyer.Reservation, seller.Reservation)

	case q.Price > 0 && q.Price < m.Ask:
		sess.Ledger.Append(ledger.Bids, q.Price)
		if m.HasAsk() {
			sess.Ledger.Append(ledger.RejectedAsks, m.Ask)
		}
		sess.ActiveBidder = buyer.ID
		m.Bid = q.Price
		mv.Kind = event.KindBid
	}
	return mv
}

func (s *Sequencer) applyAsk(seller domain.Trader) event.Move {
	sess := s.session
	m := &sess.Market

	if m.HasAsk() {
		sess.Ledger.Append(ledger.RejectedAsks, m.Ask)
	}

	q := s.quoter.OptimalAsk(*m, seller.Reservation)
	mv := newMove(seller, q)

	switch {
	case m.HasBid() && q.Price == m.Bid:
		buyer, ok := sess.Buyer(sess.ActiveBidder)
		if !ok {
			panic(fmt.Sprintf("COUNTERPARTY_MISSING: bid %d has no live author (active bidder %d)", m.Bid, sess.ActiveBidder))
		}
		s.trade(buyer, seller, q.Price, ledger.AcceptedBids)
		markTrade(&mv, buyer.ID, buyer.Reservation, seller.Reservation)

	case q.Price > m.Bid && q.Price < m.Ceiling:
		sess.Ledger.Append(ledger.Asks, q.Price)
		if m.HasBid() {
			sess.Ledger.Append(ledger.RejectedBids, m.Bid)
		}
		sess.ActiveSeller = seller.ID
		m.Ask = q.Price
		mv.Kind = event.KindAsk
	}
	return mv
}

// trade settles a deal at price, records the accepted quote and closes the
// current epoch.
func (s *Sequencer) trade(buyer, seller domain.Trader, price int64, accepted ledger.Category) {
	sess := s.session

	sess.Ledger.Append(accepted, price)
	sess.Stats.RecordTrade(price, buyer.Reservation, seller.Reservation)
	s.replacer.Apply(sess, buyer, seller)

	sess.Market.Reset()
	sess.ActiveBidder = domain.NoTrader
	sess.ActiveSeller = domain.NoTrader
	sess.Ledger.OpenEpoch()

	slog.Info("TRADE",
		slog.Int("round", sess.Stats.Round),
		slog.Int64("price", price),
		slog.Int("buyer", int(buyer.ID)),
		slog.Int("seller", int(seller.ID)),
		slog.Int64("value", buyer.Reservation),
		slog.Int64("cost", seller.Reservation),
	)
}

func newMove(t domain.Trader, q strategy.Quote) event.Move {
	return event.Move{
		Kind:         event.KindPass,
		Trader:       t.ID,
		Role:         t.Role,
		Price:        q.Price,
		Payoff:       q.Payoff,
		Counterparty: domain.NoTrader,
	}
}

func markTrade(mv *event.Move, counterparty domain.TraderID, value, cost int64) {
	mv.Kind = event.KindTrade
	mv.Counterparty = counterparty
	mv.Value = value
	mv.Cost = cost
}
