package engine

import (
	"math/rand/v2"
	"testing"

	"gd_auction/internal/belief"
	"gd_auction/internal/domain"
	"gd_auction/internal/ledger"
	"gd_auction/internal/strategy"
)

// BenchmarkSequencer_Step measures one full move: quoting every live trader,
// drawing a mover and applying its quote.
func BenchmarkSequencer_Step(b *testing.B) {
	values := []int64{225, 260, 280, 305}
	costs := []int64{140, 165, 190, 230}
	rng := rand.New(rand.NewPCG(1, 1))

	l := ledger.New()
	sess := NewSession(1000, l, 0)
	buyers, sellers := domain.NewPools(values, costs)
	opt := strategy.NewOptimizer(l, 0, belief.DegenerateNeutral)
	seq := NewSequencer(sess, opt, NewSelector(opt, rng), NewReplacer(domain.ReplacePerfect, values, costs, rng), nil)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if i%40 == 0 {
			sess.StartRound(i/40, buyers, sellers)
		}
		seq.Step()
	}
}
