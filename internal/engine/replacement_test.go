package engine

import (
	"math/rand/v2"
	"slices"
	"testing"

	"gd_auction/internal/domain"
	"gd_auction/internal/ledger"
)

func TestReplacer_Apply(t *testing.T) {
	values := []int64{225, 260, 280}
	costs := []int64{140, 165, 190}

	setup := func(policy domain.ReplacementPolicy) (*Replacer, *Session) {
		sess := NewSession(ceiling, ledger.New(), 0)
		buyers, sellers := domain.NewPools(values, costs)
		sess.StartRound(0, buyers, sellers)
		return NewReplacer(policy, values, costs, rand.New(rand.NewPCG(5, 6))), sess
	}

	t.Run("None removes the pair", func(t *testing.T) {
		r, sess := setup(domain.ReplaceNone)
		buyer, _ := sess.Buyer(1)
		seller, _ := sess.Seller(3)
		r.Apply(sess, buyer, seller)

		if _, ok := sess.Buyer(1); ok {
			t.Error("Buyer 1 should be gone")
		}
		if _, ok := sess.Seller(3); ok {
			t.Error("Seller 3 should be gone")
		}
		if b, s := sess.PoolSizes(); b != 2 || s != 2 {
			t.Errorf("Expected pools of 2, got %d and %d", b, s)
		}
	})

	t.Run("Perfect keeps the pools", func(t *testing.T) {
		r, sess := setup(domain.ReplacePerfect)
		before := slices.Clone(sess.Buyers)
		buyer, _ := sess.Buyer(0)
		seller, _ := sess.Seller(5)
		r.Apply(sess, buyer, seller)

		if !slices.Equal(sess.Buyers, before) {
			t.Errorf("Buyers changed: %v", sess.Buyers)
		}
	})

	t.Run("Random swaps in fresh traders", func(t *testing.T) {
		r, sess := setup(domain.ReplaceRandom)
		buyer, _ := sess.Buyer(2)
		seller, _ := sess.Seller(4)
		r.Apply(sess, buyer, seller)

		if b, s := sess.PoolSizes(); b != 3 || s != 3 {
			t.Fatalf("Expected pools of 3, got %d and %d", b, s)
		}
		fresh := sess.Buyers[2]
		if fresh.ID != 6 || !fresh.IsBuyer() || !slices.Contains(values, fresh.Reservation) {
			t.Errorf("Unexpected replacement buyer %+v", fresh)
		}
		freshSeller := sess.Sellers[1]
		if freshSeller.ID != 7 || freshSeller.IsBuyer() || !slices.Contains(costs, freshSeller.Reservation) {
			t.Errorf("Unexpected replacement seller %+v", freshSeller)
		}
	})

	t.Run("Unknown trader panics", func(t *testing.T) {
		r, sess := setup(domain.ReplaceNone)
		defer func() {
			if rec := recover(); rec == nil {
				t.Error("Expected panic for a trader not in the pool")
			}
		}()
		r.Apply(sess, domain.Trader{ID: 99, Role: domain.RoleBuyer}, sess.Sellers[0])
	})
}
