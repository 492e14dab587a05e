package advisor

import "errors"

// ErrEmptySeries is returned when a recommendation is requested for an
// empty price series.
var ErrEmptySeries = errors.New("empty price series")

// SignalVote is one indicator's contribution to the recommendation. Strength
// is signed: positive favors buying, negative favors selling, roughly in the
// range -2.0..+2.0.
type SignalVote struct {
	Strength    float64
	Explanation string
}

// WeightProfile assigns a multiplier per indicator category. Profiles are
// selected by risk tolerance and passed into the advisor explicitly.
type WeightProfile struct {
	RSI               float64
	MACD              float64
	MovingAverages    float64
	SupportResistance float64
	Trend             float64
	Volatility        float64
}

// Risk tolerance levels
const (
	RiskToleranceLow    = "low"
	RiskToleranceMedium = "medium"
	RiskToleranceHigh   = "high"
)

// WeightsFor returns the indicator weight profile for a risk tolerance
// level. Unknown levels fall back to the medium profile.
func WeightsFor(riskTolerance string) WeightProfile {
	switch riskTolerance {
	case RiskToleranceLow:
		return WeightProfile{
			RSI:               1.2,
			MACD:              0.8,
			MovingAverages:    1.3,
			SupportResistance: 1.0,
			Trend:             1.2,
			Volatility:        0.5,
		}
	case RiskToleranceHigh:
		return WeightProfile{
			RSI:               0.8,
			MACD:              1.2,
			MovingAverages:    0.7,
			SupportResistance: 0.6,
			Trend:             0.8,
			Volatility:        1.0,
		}
	default:
		return WeightProfile{
			RSI:               1.0,
			MACD:              1.0,
			MovingAverages:    1.0,
			SupportResistance: 0.8,
			Trend:             1.0,
			Volatility:        0.7,
		}
	}
}

// Recommendation is the advisor's final output for one evaluation. BuyScore
// and SellScore accumulate the positive and negative weighted votes
// separately; equal scores always resolve to HOLD.
type Recommendation struct {
	Price        float64
	BuyScore     float64
	SellScore    float64
	Label        string
	Explanations []string
}
