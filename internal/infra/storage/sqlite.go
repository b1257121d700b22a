package storage

import (
	"fmt"

	"gd_auction/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryDSN keeps the journal in process memory; nothing touches the disk.
const MemoryDSN = ":memory:"

// Journal is the trade journal backed by SQLite (pure Go driver).
type Journal struct {
	db *gorm.DB
}

var _ domain.TradeJournal = (*Journal)(nil)

// NewJournal opens an in-memory journal.
func NewJournal() (*Journal, error) {
	return OpenJournal(MemoryDSN)
}

// OpenJournal opens a journal on dsn and migrates the schema.
func OpenJournal(dsn string) (*Journal, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	// Every pooled connection to :memory: would get its own empty database.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access journal pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&domain.TradeRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate journal: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close releases the underlying connection; an in-memory journal is gone after this.
func (j *Journal) Close() error {
	sqlDB, err := j.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveTrade appends one trade
func (j *Journal) SaveTrade(rec *domain.TradeRecord) error {
	return j.db.Create(rec).Error
}

// TradesByRound returns the trades of one round in execution order
func (j *Journal) TradesByRound(runID string, round int) ([]domain.TradeRecord, error) {
	var recs []domain.TradeRecord
	err := j.db.
		Where("run_id = ? AND `round` = ?", runID, round).
		Order("seq").
		Find(&recs).Error
	return recs, err
}

// CountTrades returns the number of trades journaled for a run
func (j *Journal) CountTrades(runID string) (int64, error) {
	var n int64
	err := j.db.Model(&domain.TradeRecord{}).Where("run_id = ?", runID).Count(&n).Error
	return n, err
}

// RoundSummaries aggregates count and price range per round. Rounds without
// trades do not appear.
func (j *Journal) RoundSummaries(runID string) ([]domain.RoundSummary, error) {
	var out []domain.RoundSummary
	err := j.db.Model(&domain.TradeRecord{}).
		Select("`round` AS round, COUNT(*) AS trades, AVG(price) AS avg_price, MIN(price) AS min_price, MAX(price) AS max_price").
		Where("run_id = ?", runID).
		Group("`round`").
		Order("`round`").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize run %s: %w", runID, err)
	}
	return out, nil
}
