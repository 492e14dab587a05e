package advisor

import (
	"ETHInvestBot/internal/models"
	"ETHInvestBot/internal/services/indicators"
)

// Trailing windows for the trend and volatility evaluators
const (
	trendWindow      = 14
	volatilityWindow = 14
)

// Advisor turns a price history into a BUY/SELL/HOLD recommendation by
// scoring each indicator and aggregating the weighted votes.
type Advisor struct {
	riskTolerance string
	weights       WeightProfile
}

func NewAdvisor(riskTolerance string) *Advisor {
	return &Advisor{
		riskTolerance: riskTolerance,
		weights:       WeightsFor(riskTolerance),
	}
}

// RiskTolerance returns the advisor's configured tolerance level.
func (a *Advisor) RiskTolerance() string {
	return a.riskTolerance
}

// SetRiskTolerance switches the weight profile.
func (a *Advisor) SetRiskTolerance(riskTolerance string) {
	a.riskTolerance = riskTolerance
	a.weights = WeightsFor(riskTolerance)
}

// GenerateRecommendation evaluates every indicator over the supplied
// chronological price series and aggregates the weighted votes. Positive
// contributions accumulate into BuyScore, negative ones into SellScore (as
// a positive magnitude). Indicators without enough history vote zero.
func (a *Advisor) GenerateRecommendation(prices []float64) (*Recommendation, error) {
	if len(prices) == 0 {
		return nil, ErrEmptySeries
	}

	currentPrice := prices[len(prices)-1]

	rsi := indicators.CalculateRSI(prices, indicators.RSIDefaultWindow)
	macd := indicators.CalculateMACD(prices, indicators.MACDDefaultFast, indicators.MACDDefaultSlow, indicators.MACDDefaultSignal)
	maCross := indicators.CheckMovingAverages(prices, indicators.MADefaultShort, indicators.MADefaultLong)
	srLevels := indicators.IdentifySupportResistance(prices, indicators.SRDefaultWindow)

	votes := []struct {
		vote   SignalVote
		weight float64
	}{
		{evaluateRSI(rsi), a.weights.RSI},
		{evaluateMACD(macd), a.weights.MACD},
		{evaluateMovingAverages(maCross), a.weights.MovingAverages},
		{evaluateSupportResistance(currentPrice, srLevels), a.weights.SupportResistance},
		{evaluateTrend(prices, trendWindow), a.weights.Trend},
		{evaluateVolatility(prices, volatilityWindow), a.weights.Volatility},
	}

	rec := &Recommendation{
		Price:        currentPrice,
		Explanations: make([]string, 0, len(votes)),
	}

	for _, v := range votes {
		weighted := v.vote.Strength * v.weight
		if weighted > 0 {
			rec.BuyScore += weighted
		} else if weighted < 0 {
			rec.SellScore += -weighted
		}
		rec.Explanations = append(rec.Explanations, v.vote.Explanation)
	}

	rec.Label = classify(rec.BuyScore, rec.SellScore)
	return rec, nil
}

// Snapshot captures the indicator state of a recommendation for the
// decision log.
func (a *Advisor) Snapshot(prices []float64, rec *Recommendation) models.IndicatorSnapshot {
	macd := indicators.CalculateMACD(prices, indicators.MACDDefaultFast, indicators.MACDDefaultSlow, indicators.MACDDefaultSignal)
	maCross := indicators.CheckMovingAverages(prices, indicators.MADefaultShort, indicators.MADefaultLong)
	srLevels := indicators.IdentifySupportResistance(prices, indicators.SRDefaultWindow)

	return models.IndicatorSnapshot{
		RSI:              indicators.CalculateRSI(prices, indicators.RSIDefaultWindow),
		MACDSignal:       string(macd.Signal),
		MASignal:         string(maCross.Signal),
		SupportLevels:    srLevels.Support,
		ResistanceLevels: srLevels.Resistance,
		BuyScore:         rec.BuyScore,
		SellScore:        rec.SellScore,
	}
}

// classify maps the score pair to a recommendation label. Ties always
// resolve to HOLD.
func classify(buyScore, sellScore float64) string {
	if buyScore >= 2 && buyScore > sellScore {
		if buyScore >= 3 {
			return models.RecommendationStrongBuy
		}
		return models.RecommendationBuy
	}
	if sellScore >= 2 && sellScore > buyScore {
		if sellScore >= 3 {
			return models.RecommendationStrongSell
		}
		return models.RecommendationSell
	}
	return models.RecommendationHold
}
