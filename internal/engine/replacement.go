package engine

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"gd_auction/internal/domain"
)

// Replacer applies the replacement policy to a matched pair.
type Replacer struct {
	policy domain.ReplacementPolicy
	rng    *rand.Rand

	// reservation lists fresh traders are drawn from
	values []int64
	costs  []int64

	nextID domain.TraderID
}

// NewReplacer creates a replacer. Fresh ids start after the configured pools.
func NewReplacer(policy domain.ReplacementPolicy, values, costs []int64, rng *rand.Rand) *Replacer {
	return &Replacer{
		policy: policy,
		rng:    rng,
		values: slices.Clone(values),
		costs:  slices.Clone(costs),
		nextID: domain.TraderID(len(values) + len(costs)),
	}
}

// Policy returns the configured policy.
func (r *Replacer) Policy() domain.ReplacementPolicy {
	return r.policy
}

// Apply updates the session pools after buyer and seller traded.
func (r *Replacer) Apply(sess *Session, buyer, seller domain.Trader) {
	bi := indexOf(sess.Buyers, buyer.ID)
	si := indexOf(sess.Sellers, seller.ID)
	if bi < 0 || si < 0 {
		panic(fmt.Sprintf("REPLACEMENT_TRADER_MISSING: buyer=%d seller=%d", buyer.ID, seller.ID))
	}

	switch r.policy {
	case domain.ReplaceNone:
		sess.Buyers = slices.Delete(sess.Buyers, bi, bi+1)
		sess.Sellers = slices.Delete(sess.Sellers, si, si+1)
	case domain.ReplacePerfect:
		// pools are infinitely replenished
	case domain.ReplaceRandom:
		sess.Buyers[bi] = r.fresh(domain.RoleBuyer, r.values)
		sess.Sellers[si] = r.fresh(domain.RoleSeller, r.costs)
	default:
		panic(fmt.Sprintf("REPLACEMENT_UNKNOWN_POLICY: %d", r.policy))
	}
}

func (r *Replacer) fresh(role domain.Role, from []int64) domain.Trader {
	t := domain.Trader{
		ID:          r.nextID,
		Role:        role,
		Reservation: from[r.rng.IntN(len(from))],
	}
	r.nextID++
	return t
}
