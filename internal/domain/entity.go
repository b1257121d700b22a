package domain

import (
	"time"
)

// TradeRecord is one executed trade as stored in the journal
type TradeRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RunID     string    `gorm:"index" json:"run_id"`
	Round     int       `gorm:"index" json:"round"`
	Seq       uint64    `json:"seq"` // move sequence number within the run
	Price     int64     `json:"price"`
	BuyerID   TraderID  `json:"buyer_id"`
	SellerID  TraderID  `json:"seller_id"`
	Value     int64     `json:"value"`
	Cost      int64     `json:"cost"`
	CreatedAt time.Time `json:"created_at"`
}

// RoundSummary is the per-round aggregate read back from the journal.
type RoundSummary struct {
	Round    int     `json:"round"`
	Trades   int     `json:"trades"`
	AvgPrice float64 `json:"avg_price"`
	MinPrice int64   `json:"min_price"`
	MaxPrice int64   `json:"max_price"`
}
