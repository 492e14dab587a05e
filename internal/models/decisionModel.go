package models

import (
	"time"
)

// IndicatorSnapshot captures the indicator state behind a recommendation so
// the decision can be evaluated against later price movement.
type IndicatorSnapshot struct {
	RSI              float64   `json:"rsi"`
	MACDSignal       string    `json:"macd_signal"`
	MASignal         string    `json:"ma_signal"`
	SupportLevels    []float64 `json:"support_levels,omitempty"`
	ResistanceLevels []float64 `json:"resistance_levels,omitempty"`
	BuyScore         float64   `json:"buy_score"`
	SellScore        float64   `json:"sell_score"`
}

// Decision is one entry in the append-only decision log.
type Decision struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	Date           time.Time         `gorm:"index;not null" json:"date"`
	Recommendation string            `gorm:"not null" json:"recommendation"`
	Price          float64           `gorm:"type:decimal(20,8);not null" json:"price"`
	Analysis       IndicatorSnapshot `gorm:"serializer:json" json:"analysis"`
}

const (
	RecommendationStrongBuy  = "STRONG BUY"
	RecommendationBuy        = "BUY"
	RecommendationHold       = "HOLD"
	RecommendationSell       = "SELL"
	RecommendationStrongSell = "STRONG SELL"
)

// TableName sets the table name for Decision model
func (Decision) TableName() string {
	return "decisions"
}
