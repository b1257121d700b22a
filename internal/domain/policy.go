package domain

import "fmt"

// ReplacementPolicy decides what happens to a matched pair after a trade.
type ReplacementPolicy int

const (
	// ReplaceNone removes matched traders from their pools.
	ReplaceNone ReplacementPolicy = iota
	// ReplacePerfect keeps the pool unchanged, as if infinitely replenished.
	ReplacePerfect
	// ReplaceRandom swaps matched traders for freshly sampled ones.
	ReplaceRandom
)

// String returns the config spelling of the policy
func (p ReplacementPolicy) String() string {
	switch p {
	case ReplaceNone:
		return "none"
	case ReplacePerfect:
		return "perfect"
	case ReplaceRandom:
		return "random"
	default:
		return "unknown"
	}
}

// ParseReplacementPolicy maps a config value to a policy.
func ParseReplacementPolicy(s string) (ReplacementPolicy, error) {
	switch s {
	case "", "none":
		return ReplaceNone, nil
	case "perfect":
		return ReplacePerfect, nil
	case "random":
		return ReplaceRandom, nil
	default:
		return ReplaceNone, fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}
