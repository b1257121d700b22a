package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"gd_auction/internal/belief"
	"gd_auction/internal/domain"
	"gd_auction/internal/engine"
	"gd_auction/internal/event"
	"gd_auction/internal/infra"
	"gd_auction/internal/ledger"
	"gd_auction/internal/strategy"

	"github.com/google/uuid"
)

// Options is the resolved run configuration.
type Options struct {
	Values  []int64
	Costs   []int64
	Ceiling int64

	MovesPerRound int
	Rounds        int
	Memory        int // epochs; <= 0 is infinite

	Replacement  domain.ReplacementPolicy
	Degenerate   belief.DegeneratePolicy
	CarryHistory bool
	Seed         uint64
}

// OptionsFromConfig resolves a validated config. A zero seed is replaced by
// one taken from the clock.
func OptionsFromConfig(cfg *infra.Config) Options {
	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return Options{
		Values:        cfg.Market.Values,
		Costs:         cfg.Market.Costs,
		Ceiling:       cfg.Market.Ceiling,
		MovesPerRound: cfg.Simulation.MovesPerRound,
		Rounds:        cfg.Simulation.Rounds,
		Memory:        cfg.Simulation.Memory,
		Replacement:   cfg.ReplacementPolicy(),
		Degenerate:    cfg.DegeneratePolicy(),
		CarryHistory:  cfg.CarriesHistory(),
		Seed:          seed,
	}
}

// Simulation drives rounds of the auction and journals the trades.
type Simulation struct {
	opts    Options
	runID   string
	ledger  *ledger.Ledger
	session *engine.Session
	seq     *engine.Sequencer

	journal domain.TradeJournal // optional
	metrics *infra.Metrics

	observers []event.Observer
	err       error // first journal failure, surfaced after the move
}

// NewSimulation wires ledger, optimizer, selector and sequencer for one run.
// journal may be nil; metrics defaults to infra.GlobalMetrics.
func NewSimulation(opts Options, journal domain.TradeJournal, metrics *infra.Metrics) *Simulation {
	if metrics == nil {
		metrics = infra.GlobalMetrics
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	l := ledger.New()
	sess := engine.NewSession(opts.Ceiling, l, opts.Memory)
	opt := strategy.NewOptimizer(l, opts.Memory, opts.Degenerate)

	s := &Simulation{
		opts:    opts,
		runID:   uuid.NewString(),
		ledger:  l,
		session: sess,
		journal: journal,
		metrics: metrics,
	}
	s.seq = engine.NewSequencer(sess, opt,
		engine.NewSelector(opt, rng),
		engine.NewReplacer(opts.Replacement, opts.Values, opts.Costs, rng),
		s.handleMove,
	)
	return s
}

// RunID identifies this run in the journal.
func (s *Simulation) RunID() string {
	return s.runID
}

// Session exposes the live simulation context, for observers and tests.
func (s *Simulation) Session() *engine.Session {
	return s.session
}

// Observe registers fn to receive every move after the simulation's own
// bookkeeping. Not safe to call while Run is in progress.
func (s *Simulation) Observe(fn event.Observer) {
	s.observers = append(s.observers, fn)
}

// Run plays every configured round and returns one RoundStatistics per
// completed or interrupted round. Cancellation is checked between moves.
//
// Invariant violations inside the engine are not recovered: the state is
// logged and the panic continues (halt policy).
func (s *Simulation) Run(ctx context.Context) (results []domain.RoundStatistics, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.metrics.RecordError()
			slog.Error("CRITICAL_PANIC_DETECTED",
				slog.Any("panic", r),
				slog.String("run_id", s.runID),
				slog.Any("state", s.session.Snapshot()),
			)
			panic(fmt.Sprintf("HALTED: %v", r))
		}
	}()

	buyers, sellers := domain.NewPools(s.opts.Values, s.opts.Costs)
	slog.Info("Simulation started",
		slog.String("run_id", s.runID),
		slog.Int("rounds", s.opts.Rounds),
		slog.Int("traders", len(buyers)+len(sellers)),
		slog.String("replacement", s.opts.Replacement.String()),
	)

	for round := 0; round < s.opts.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if round > 0 && !s.opts.CarryHistory {
			s.ledger.Reset()
		}
		s.session.StartRound(round, buyers, sellers)
		slog.Debug("Round started", slog.Int("round", round), slog.Int("epoch", s.ledger.Epoch()))

		stats, err := s.runRound(ctx)
		results = append(results, stats)
		if err != nil {
			return results, err
		}

		slog.Info("Round finished",
			slog.Int("round", round),
			slog.Int("trades", stats.Trades),
			slog.Int("moves", stats.Moves),
			slog.Bool("halted", stats.Halted),
			slog.Any("prices", stats.Prices),
		)
	}
	return results, nil
}

func (s *Simulation) runRound(ctx context.Context) (domain.RoundStatistics, error) {
	sess := s.session
	for move := 0; move < s.opts.MovesPerRound; move++ {
		if err := ctx.Err(); err != nil {
			return sess.Stats, err
		}

		start := time.Now()
		if _, ok := s.seq.Step(); !ok {
			sess.Stats.Halted = true
			s.metrics.RecordHalt()
			break
		}
		s.metrics.RecordMove(time.Since(start).Nanoseconds())

		if s.err != nil {
			return sess.Stats, s.err
		}
	}
	return sess.Stats, nil
}

func (s *Simulation) handleMove(mv event.Move) {
	switch mv.Kind {
	case event.KindBid, event.KindAsk:
		s.metrics.RecordQuote()
	case event.KindPass:
		s.metrics.RecordPass()
	case event.KindTrade:
		s.metrics.RecordTrade()
		s.journalTrade(mv)
	}
	b, sl := s.session.PoolSizes()
	s.metrics.SetLiveTraders(int32(b + sl))

	for _, fn := range s.observers {
		fn(mv)
	}
}

func (s *Simulation) journalTrade(mv event.Move) {
	if s.journal == nil || s.err != nil {
		return
	}

	buyer, seller := mv.Trader, mv.Counterparty
	if mv.Role == domain.RoleSeller {
		buyer, seller = seller, buyer
	}
	rec := &domain.TradeRecord{
		RunID:    s.runID,
		Round:    mv.Round,
		Seq:      mv.Seq,
		Price:    mv.Price,
		BuyerID:  buyer,
		SellerID: seller,
		Value:    mv.Value,
		Cost:     mv.Cost,
	}
	if err := s.journal.SaveTrade(rec); err != nil {
		s.metrics.RecordError()
		s.err = fmt.Errorf("journal trade seq %d: %w", mv.Seq, err)
	}
}
