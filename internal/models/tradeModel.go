package models

import (
	"time"
)

// Trade is one entry in the append-only trade ledger. Trades are never
// updated or deleted after creation.
type Trade struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	Date   time.Time `gorm:"index;not null" json:"date"`
	Type   string    `gorm:"not null" json:"type"`
	Price  float64   `gorm:"type:decimal(20,8);not null" json:"price"`
	Amount float64   `gorm:"type:decimal(20,8);not null" json:"amount"`
	Value  float64   `gorm:"type:decimal(20,8);not null" json:"value"`
	Notes  string    `json:"notes"`
}

const (
	TradeTypeBuy  = "buy"
	TradeTypeSell = "sell"
)

// TableName sets the table name for Trade model
func (Trade) TableName() string {
	return "trades"
}
