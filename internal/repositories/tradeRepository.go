package repositories

import (
	"errors"
	"time"

	"ETHInvestBot/internal/models"

	"gorm.io/gorm"
)

type TradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new instance of TradeRepository
func NewTradeRepository(db *gorm.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// Record appends a new trade to the ledger. Trades are append-only; there
// are no update or delete operations on this repository.
func (r *TradeRepository) Record(tradeType string, price, amount float64, date time.Time, notes string) (*models.Trade, error) {
	if tradeType != models.TradeTypeBuy && tradeType != models.TradeTypeSell {
		return nil, errors.New("trade type must be buy or sell")
	}
	if price <= 0 {
		return nil, errors.New("price must be positive")
	}
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}

	trade := &models.Trade{
		Date:   date,
		Type:   tradeType,
		Price:  price,
		Amount: amount,
		Value:  price * amount,
		Notes:  notes,
	}
	if err := r.db.Create(trade).Error; err != nil {
		return nil, err
	}
	return trade, nil
}

// FindAll retrieves the full ledger in chronological order
func (r *TradeRepository) FindAll() ([]models.Trade, error) {
	var trades []models.Trade
	err := r.db.Order("date ASC").Find(&trades).Error
	return trades, err
}

// Count returns the number of trades in the ledger
func (r *TradeRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Trade{}).Count(&count).Error
	return count, err
}
