package models

import (
	"time"
)

// Price is a single sample of the asset's price history, keyed by
// (symbol, timestamp). Re-recording an existing timestamp refreshes the
// sample in place; history is always handled in chronological order.
type Price struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Symbol    string    `gorm:"not null;uniqueIndex:idx_prices_symbol_timestamp" json:"symbol"`
	Timestamp time.Time `gorm:"not null;uniqueIndex:idx_prices_symbol_timestamp" json:"timestamp"`
	Price     float64   `gorm:"type:decimal(20,8);not null" json:"price"`
	MarketCap float64   `gorm:"type:decimal(24,2)" json:"market_cap,omitempty"`
	Volume    float64   `gorm:"type:decimal(24,8)" json:"volume,omitempty"`
}

// TableName sets the table name for Price model
func (Price) TableName() string {
	return "prices"
}

// ExtractPrices returns the raw price values from a chronological sample slice
func ExtractPrices(samples []Price) []float64 {
	prices := make([]float64, len(samples))
	for i, s := range samples {
		prices[i] = s.Price
	}
	return prices
}
