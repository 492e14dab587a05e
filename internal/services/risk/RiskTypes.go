package risk

import "errors"

// ErrInvalidInput is returned when an operation's inputs cannot produce a
// meaningful result, e.g. an entry price at or below the stop price.
var ErrInvalidInput = errors.New("invalid input")

// Stop-loss method names
const (
	MethodFixedPercentage = "fixed_percentage"
	MethodATRBased        = "atr_based"
	MethodSupportBased    = "support_based"
)

// StopLossMethod describes one computed stop-loss alternative.
type StopLossMethod struct {
	StopPrice      float64
	RiskAmount     float64
	RiskPercentage float64
	ATRValue       float64 // Set for the ATR-based method only
	Explanation    string
}

// StopLossResult holds every stop-loss method that could be computed from
// the available history plus the recommended one.
type StopLossResult struct {
	EntryPrice           float64
	Methods              map[string]StopLossMethod
	RecommendedMethod    string
	RecommendedStopPrice float64
}

// PositionSize is the sizing outcome for one trade. When the exposure cap
// kicks in, Coins/Dollars/RiskAmount reflect the clamped position, not the
// raw risk-based one.
type PositionSize struct {
	Coins               float64
	Dollars             float64
	RiskAmount          float64
	RiskPerCoin         float64
	PortfolioPercentage float64
	MaxPositionDollars  float64
	Explanation         string
}

// ProfitTarget is one take-profit level expressed as an R-multiple of the
// initial risk.
type ProfitTarget struct {
	Ratio            float64
	TargetPrice      float64
	ProfitAmount     float64
	ProfitPercentage float64
	Explanation      string
}

// TakeProfitResult holds the ordered take-profit targets for a position.
type TakeProfitResult struct {
	EntryPrice     float64
	StopLossPrice  float64
	RiskAmount     float64
	RiskPercentage float64
	Targets        []ProfitTarget
}

// TrailingStopResult is the outcome of one trailing-stop evaluation. The
// stop only ever ratchets upward.
type TrailingStopResult struct {
	EntryPrice        float64
	CurrentPrice      float64
	InitialStopPrice  float64
	TrailingStopPrice float64
	TrailPercentage   float64
	TrailAmount       float64
	IsAdjusted        bool
	Explanation       string
}

// ExposureResult reports the portfolio's current exposure to the asset and
// the reduction needed when it exceeds the configured limit.
type ExposureResult struct {
	Holdings           float64
	HoldingsValue      float64
	ExposurePercentage float64
	MaxExposure        float64
	ExceedsLimit       bool
	AdjustmentNeeded   float64 // Coins to sell to get back under the limit
	Explanation        string
}
