package performance

import (
	"errors"
	"time"
)

// ErrEmptySeries is returned when a computation needs at least one trade or
// decision and the supplied collection is empty.
var ErrEmptySeries = errors.New("empty series")

// PortfolioValue summarizes the current state of the ledger against the
// latest price.
type PortfolioValue struct {
	Balance        float64 // Net coins held; can go negative, over-selling is not rejected
	TotalInvested  float64
	TotalWithdrawn float64
	CurrentValue   float64
	RealizedPL     float64
	UnrealizedPL   float64
	TotalPL        float64
	ROI            float64
	CurrentPrice   float64
}

// Metrics holds the full performance report. Risk metrics (volatility,
// Sharpe, drawdown) are only populated when the ledger has at least 30
// trades; decision metrics only when the decision log is non-empty.
type Metrics struct {
	TotalTrades int
	BuyTrades   int
	SellTrades  int

	RealizedPL   float64
	UnrealizedPL float64
	TotalPL      float64
	ROI          float64

	FirstTradeDate   time.Time
	LastTradeDate    time.Time
	DaysInvested     int
	AnnualizedReturn float64

	HasRiskMetrics       bool
	Volatility           float64
	AnnualizedVolatility float64
	SharpeRatio          float64
	MaxDrawdown          float64

	RecommendationCounts map[string]int
	EvaluatedDecisions   int
	CorrectDecisions     int
	DecisionAccuracy     float64
}

// DecisionEvaluation is the ex-post verdict on one recorded decision.
type DecisionEvaluation struct {
	ID             uint
	Date           time.Time
	Recommendation string
	Price          float64
	NextPrice      float64
	PriceChangePct float64
	Correct        bool
}
