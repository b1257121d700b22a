package domain

// TradeJournal records executed trades and reads back per-round aggregates.
type TradeJournal interface {
	SaveTrade(rec *TradeRecord) error
	TradesByRound(runID string, round int) ([]TradeRecord, error)
	RoundSummaries(runID string) ([]RoundSummary, error)
}
