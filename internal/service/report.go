package service

import (
	"fmt"
	"slices"

	"gd_auction/internal/domain"

	"github.com/shopspring/decimal"
)

// Report summarizes a run across rounds.
type Report struct {
	RunID  string `json:"run_id"`
	Rounds int    `json:"rounds"`
	Trades int    `json:"trades"`

	MeanPrice decimal.Decimal `json:"mean_price"`

	// Surplus is the realized gains from trade; MaxSurplus is the competitive
	// surplus of the starting pools times the number of rounds.
	Surplus    int64           `json:"surplus"`
	MaxSurplus int64           `json:"max_surplus"`
	Efficiency decimal.Decimal `json:"efficiency"`

	PerRound []domain.RoundSummary `json:"per_round,omitempty"`
}

// MaxSurplus returns the largest total surplus one round of the given pools
// can realize: the highest values matched with the lowest costs while the
// pair still gains from trade.
func MaxSurplus(values, costs []int64) int64 {
	v := slices.Clone(values)
	c := slices.Clone(costs)
	slices.Sort(v)
	slices.Reverse(v)
	slices.Sort(c)

	var total int64
	for i := 0; i < min(len(v), len(c)); i++ {
		if v[i] <= c[i] {
			break
		}
		total += v[i] - c[i]
	}
	return total
}

// BuildReport aggregates per-round statistics.
func BuildReport(runID string, results []domain.RoundStatistics, values, costs []int64) Report {
	r := Report{
		RunID:      runID,
		Rounds:     len(results),
		MeanPrice:  decimal.Zero,
		Efficiency: decimal.Zero,
		MaxSurplus: MaxSurplus(values, costs) * int64(len(results)),
	}

	var priceSum int64
	for _, st := range results {
		r.Trades += st.Trades
		r.Surplus += st.Surplus()
		for _, p := range st.Prices {
			priceSum += p
		}
	}

	if r.Trades > 0 {
		r.MeanPrice = decimal.NewFromInt(priceSum).Div(decimal.NewFromInt(int64(r.Trades))).Round(2)
	}
	if r.MaxSurplus > 0 {
		r.Efficiency = decimal.NewFromInt(r.Surplus).Div(decimal.NewFromInt(r.MaxSurplus)).Round(4)
	}
	return r
}

// Report builds the run summary, with per-round aggregates read back from the
// journal when one is attached.
func (s *Simulation) Report(results []domain.RoundStatistics) (Report, error) {
	r := BuildReport(s.runID, results, s.opts.Values, s.opts.Costs)
	if s.journal == nil {
		return r, nil
	}

	sums, err := s.journal.RoundSummaries(s.runID)
	if err != nil {
		return r, fmt.Errorf("failed to read round summaries: %w", err)
	}
	r.PerRound = sums
	return r, nil
}
