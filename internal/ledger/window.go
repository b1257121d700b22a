package ledger

// Window is a detached, memory-limited view of the ledger.
type Window struct {
	Bids         []int64 `json:"bids"`
	Asks         []int64 `json:"asks"`
	AcceptedBids []int64 `json:"accepted_bids"`
	RejectedBids []int64 `json:"rejected_bids"`
	AcceptedAsks []int64 `json:"accepted_asks"`
	RejectedAsks []int64 `json:"rejected_asks"`
}

// Union returns the deduplicated submitted asks and bids of the window plus
// the sentinels 0 and ceiling, in first-seen order. Prices outside
// [0, ceiling] are dropped.
func (w Window) Union(ceiling int64) []int64 {
	seen := make(map[int64]struct{}, len(w.Asks)+len(w.Bids)+2)
	out := make([]int64, 0, len(w.Asks)+len(w.Bids)+2)

	add := func(p int64) {
		if p < 0 || p > ceiling {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, p := range w.Asks {
		add(p)
	}
	for _, p := range w.Bids {
		add(p)
	}
	add(0)
	add(ceiling)
	return out
}
