package service

import (
	"testing"

	"gd_auction/internal/domain"

	"github.com/shopspring/decimal"
)

func TestMaxSurplus(t *testing.T) {
	tests := []struct {
		name   string
		values []int64
		costs  []int64
		want   int64
	}{
		{"Reference market", []int64{225, 260, 280, 305}, []int64{140, 165, 190, 230}, 350},
		{"Order does not matter", []int64{305, 225, 280, 260}, []int64{230, 140, 190, 165}, 350},
		{"No gains from trade", []int64{100}, []int64{150}, 0},
		{"Empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxSurplus(tt.values, tt.costs); got != tt.want {
				t.Errorf("MaxSurplus = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuildReport(t *testing.T) {
	values := []int64{225, 260, 280, 305}
	costs := []int64{140, 165, 190, 230}

	var r1, r2 domain.RoundStatistics
	r1.RecordTrade(200, 305, 140)
	r1.RecordTrade(215, 280, 165)
	r2.RecordTrade(210, 260, 190)

	rep := BuildReport("run", []domain.RoundStatistics{r1, r2}, values, costs)

	if rep.Rounds != 2 || rep.Trades != 3 {
		t.Errorf("unexpected totals %+v", rep)
	}
	// (200 + 215 + 210) / 3 = 208.33
	if !rep.MeanPrice.Equal(decimal.RequireFromString("208.33")) {
		t.Errorf("MeanPrice = %s, want 208.33", rep.MeanPrice)
	}
	// 165 + 115 + 70 = 350
	if rep.Surplus != 350 || rep.MaxSurplus != 700 {
		t.Errorf("Surplus %d / MaxSurplus %d, want 350 / 700", rep.Surplus, rep.MaxSurplus)
	}
	if !rep.Efficiency.Equal(decimal.RequireFromString("0.5")) {
		t.Errorf("Efficiency = %s, want 0.5", rep.Efficiency)
	}
}

func TestBuildReport_NoTrades(t *testing.T) {
	rep := BuildReport("run", []domain.RoundStatistics{{Round: 0}}, []int64{100}, []int64{50})
	if !rep.MeanPrice.IsZero() || !rep.Efficiency.IsZero() {
		t.Errorf("expected zero mean price and efficiency, got %s / %s", rep.MeanPrice, rep.Efficiency)
	}
	if rep.MaxSurplus != 50 {
		t.Errorf("MaxSurplus = %d, want 50", rep.MaxSurplus)
	}
}
