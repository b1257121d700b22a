package domain

// RoundStatistics collects the outcome of a single round.
// Values and Costs are parallel: index i is the matched pair of trade i.
type RoundStatistics struct {
	Round  int     `json:"round"`
	Prices []int64 `json:"prices"`
	Trades int     `json:"trades"`
	Values []int64 `json:"values"`
	Costs  []int64 `json:"costs"`
	Moves  int     `json:"moves"`
	Halted bool    `json:"halted"` // no trader had a profitable move before the budget ran out
}

// RecordTrade appends a matched pair in chronological order.
func (r *RoundStatistics) RecordTrade(price, value, cost int64) {
	r.Prices = append(r.Prices, price)
	r.Values = append(r.Values, value)
	r.Costs = append(r.Costs, cost)
	r.Trades++
}

// Surplus returns the realized gains from trade, sum of value - cost.
func (r *RoundStatistics) Surplus() int64 {
	var total int64
	for i := range r.Values {
		total += r.Values[i] - r.Costs[i]
	}
	return total
}
