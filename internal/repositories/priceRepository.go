package repositories

import (
	"errors"
	"time"

	"ETHInvestBot/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// priceConflictKey is the natural key of a price sample.
var priceConflictKey = []clause.Column{{Name: "symbol"}, {Name: "timestamp"}}

type PriceRepository struct {
	db *gorm.DB
}

// NewPriceRepository creates a new instance of PriceRepository
func NewPriceRepository(db *gorm.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// Create upserts a Price record. Recording a (symbol, timestamp) that
// already exists refreshes the stored price, so the in-progress daily
// candle can be re-recorded without duplicating the sample.
func (r *PriceRepository) Create(price *models.Price) error {
	if price == nil {
		return errors.New("price cannot be nil")
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   priceConflictKey,
		DoUpdates: clause.AssignmentColumns([]string{"price", "market_cap", "volume"}),
	}).Create(price).Error
}

// CreateBatch stores a slice of Price records in one insert. Samples whose
// (symbol, timestamp) is already recorded are skipped, so a repeated
// backfill never duplicates history.
func (r *PriceRepository) CreateBatch(prices []models.Price) error {
	if len(prices) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   priceConflictKey,
		DoNothing: true,
	}).Create(&prices).Error
}

// GetPriceHistory gets the chronological price history for a symbol within a time range
func (r *PriceRepository) GetPriceHistory(symbol string, start, end time.Time) ([]models.Price, error) {
	if symbol == "" {
		return nil, errors.New("invalid symbol")
	}
	var prices []models.Price
	err := r.db.Where("symbol = ? AND timestamp BETWEEN ? AND ?",
		symbol, start, end).
		Order("timestamp ASC").
		Find(&prices).Error
	return prices, err
}

// GetLatestPrice gets the most recent price for a symbol
func (r *PriceRepository) GetLatestPrice(symbol string) (*models.Price, error) {
	if symbol == "" {
		return nil, errors.New("invalid symbol")
	}

	var price models.Price
	err := r.db.Where("symbol = ?", symbol).
		Order("timestamp DESC").
		First(&price).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	return &price, err
}
