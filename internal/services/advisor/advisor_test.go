package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ETHInvestBot/internal/models"
	"ETHInvestBot/internal/services/indicators"
)

func TestEvaluateRSI(t *testing.T) {
	cases := []struct {
		name     string
		rsi      float64
		strength float64
	}{
		{"extremely oversold capped", 2, 2.0},
		{"extremely oversold", 15, 1.5},
		{"oversold", 25, 0.5},
		{"neutral low", 40, 0.3},
		{"neutral", 50, 0},
		{"neutral high", 60, -0.3},
		{"overbought", 75, -0.5},
		{"extremely overbought", 85, -1.5},
		{"extremely overbought capped", 98, -2.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			vote := evaluateRSI(tc.rsi)
			assert.InDelta(t, tc.strength, vote.Strength, 1e-9)
			assert.NotEmpty(t, vote.Explanation)
		})
	}
}

func TestEvaluateMACD(t *testing.T) {
	t.Run("buy cross below zero escalates", func(t *testing.T) {
		vote := evaluateMACD(indicators.MACDResult{
			Signal:   indicators.CrossBuy,
			MACDLine: -2, SignalLine: -3, Histogram: 1,
		})
		assert.Equal(t, 2.0, vote.Strength)
	})

	t.Run("buy cross above zero", func(t *testing.T) {
		vote := evaluateMACD(indicators.MACDResult{
			Signal:   indicators.CrossBuy,
			MACDLine: 2, SignalLine: 1, Histogram: 1,
		})
		assert.Equal(t, 1.5, vote.Strength)
	})

	t.Run("sell cross above zero escalates", func(t *testing.T) {
		vote := evaluateMACD(indicators.MACDResult{
			Signal:   indicators.CrossSell,
			MACDLine: 3, SignalLine: 4, Histogram: -1,
		})
		assert.Equal(t, -2.0, vote.Strength)
	})

	t.Run("growing positive histogram", func(t *testing.T) {
		vote := evaluateMACD(indicators.MACDResult{
			Signal:    indicators.CrossNeutral,
			Histogram: 2, PrevHistogram: 1,
		})
		assert.Equal(t, 0.5, vote.Strength)
	})

	t.Run("deepening negative histogram", func(t *testing.T) {
		vote := evaluateMACD(indicators.MACDResult{
			Signal:    indicators.CrossNeutral,
			Histogram: -2, PrevHistogram: -1,
		})
		assert.Equal(t, -0.5, vote.Strength)
	})

	t.Run("shrinking histogram is neutral", func(t *testing.T) {
		vote := evaluateMACD(indicators.MACDResult{
			Signal:    indicators.CrossNeutral,
			Histogram: 1, PrevHistogram: 2,
		})
		assert.Zero(t, vote.Strength)
	})
}

func TestEvaluateMovingAverages(t *testing.T) {
	assert.Equal(t, 2.0, evaluateMovingAverages(indicators.MACrossResult{Signal: indicators.MAGoldenCross}).Strength)
	assert.Equal(t, -2.0, evaluateMovingAverages(indicators.MACrossResult{Signal: indicators.MADeathCross}).Strength)
	assert.Equal(t, 1.0, evaluateMovingAverages(indicators.MACrossResult{Signal: indicators.MAAbove}).Strength)
	assert.Equal(t, -1.0, evaluateMovingAverages(indicators.MACrossResult{Signal: indicators.MABelow}).Strength)
	assert.Zero(t, evaluateMovingAverages(indicators.MACrossResult{Signal: indicators.MAInsufficientData}).Strength)
}

func TestEvaluateSupportResistance(t *testing.T) {
	t.Run("very close support", func(t *testing.T) {
		vote := evaluateSupportResistance(100, indicators.SRLevels{Support: []float64{99.5}})
		assert.Equal(t, 1.5, vote.Strength)
	})

	t.Run("approaching support", func(t *testing.T) {
		vote := evaluateSupportResistance(100, indicators.SRLevels{Support: []float64{96}})
		assert.Equal(t, 0.5, vote.Strength)
	})

	t.Run("very close resistance overrides support", func(t *testing.T) {
		vote := evaluateSupportResistance(100, indicators.SRLevels{
			Support:    []float64{99.5},
			Resistance: []float64{100.5},
		})
		assert.Equal(t, -1.5, vote.Strength)
	})

	t.Run("strong support survives nearby resistance", func(t *testing.T) {
		vote := evaluateSupportResistance(100, indicators.SRLevels{
			Support:    []float64{99.5},
			Resistance: []float64{102},
		})
		assert.Equal(t, 1.5, vote.Strength)
	})

	t.Run("weak support yields to nearby resistance", func(t *testing.T) {
		vote := evaluateSupportResistance(100, indicators.SRLevels{
			Support:    []float64{98},
			Resistance: []float64{102},
		})
		assert.Equal(t, -1.0, vote.Strength)
	})

	t.Run("no nearby levels", func(t *testing.T) {
		vote := evaluateSupportResistance(100, indicators.SRLevels{
			Support:    []float64{90},
			Resistance: []float64{110},
		})
		assert.Zero(t, vote.Strength)
		assert.Equal(t, "Price is not near significant support or resistance levels", vote.Explanation)
	})
}

func TestEvaluateTrend(t *testing.T) {
	t.Run("insufficient data", func(t *testing.T) {
		assert.Zero(t, evaluateTrend([]float64{1, 2, 3}, 14).Strength)
	})

	t.Run("strong uptrend", func(t *testing.T) {
		prices := make([]float64, 14)
		for i := range prices {
			prices[i] = 100 + 2*float64(i)
		}
		assert.Equal(t, 1.5, evaluateTrend(prices, 14).Strength)
	})

	t.Run("strong downtrend", func(t *testing.T) {
		prices := make([]float64, 14)
		for i := range prices {
			prices[i] = 200 - 3*float64(i)
		}
		assert.Equal(t, -1.5, evaluateTrend(prices, 14).Strength)
	})

	t.Run("flat series", func(t *testing.T) {
		prices := make([]float64, 14)
		for i := range prices {
			prices[i] = 100
		}
		assert.Zero(t, evaluateTrend(prices, 14).Strength)
	})
}

func TestEvaluateVolatility(t *testing.T) {
	t.Run("insufficient data", func(t *testing.T) {
		assert.Zero(t, evaluateVolatility([]float64{1, 2}, 14).Strength)
	})

	t.Run("constant series reads as low volatility", func(t *testing.T) {
		prices := make([]float64, 20)
		for i := range prices {
			prices[i] = 100
		}
		assert.Equal(t, 0.5, evaluateVolatility(prices, 14).Strength)
	})

	t.Run("volatility spike versus calm history", func(t *testing.T) {
		// 28 calm samples with tiny wiggles, then 14 wild ones
		prices := make([]float64, 0, 42)
		for i := 0; i < 28; i++ {
			if i%2 == 0 {
				prices = append(prices, 100)
			} else {
				prices = append(prices, 100.5)
			}
		}
		for i := 0; i < 14; i++ {
			if i%2 == 0 {
				prices = append(prices, 110)
			} else {
				prices = append(prices, 90)
			}
		}
		assert.Equal(t, -1.0, evaluateVolatility(prices, 14).Strength)
	})
}

func TestWeightsFor(t *testing.T) {
	low := WeightsFor(RiskToleranceLow)
	medium := WeightsFor(RiskToleranceMedium)
	high := WeightsFor(RiskToleranceHigh)

	// Conservative profiles lean on trend confirmation, aggressive ones on
	// momentum indicators.
	assert.Greater(t, low.MovingAverages, high.MovingAverages)
	assert.Greater(t, high.MACD, low.MACD)
	assert.Greater(t, low.SupportResistance, high.SupportResistance)

	// Unknown tolerance falls back to the medium profile
	assert.Equal(t, medium, WeightsFor("unknown"))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name     string
		buy      float64
		sell     float64
		expected string
	}{
		{"strong buy", 3.2, 1.0, models.RecommendationStrongBuy},
		{"buy", 2.5, 1.0, models.RecommendationBuy},
		{"buy boundary", 2.0, 0, models.RecommendationBuy},
		{"strong sell", 0.5, 3.0, models.RecommendationStrongSell},
		{"sell", 0, 2.4, models.RecommendationSell},
		{"weak scores hold", 1.5, 1.0, models.RecommendationHold},
		{"exact tie holds", 2.5, 2.5, models.RecommendationHold},
		{"strong tie holds", 3.0, 3.0, models.RecommendationHold},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, classify(tc.buy, tc.sell))
		})
	}
}

// rallySeries opens with balanced oscillation, keeping the opening-window
// RSI neutral, then climbs steadily.
func rallySeries() []float64 {
	prices := make([]float64, 250)
	for i := 0; i < 15; i++ {
		prices[i] = 1000 + float64(i%2)
	}
	for i := 15; i < len(prices); i++ {
		prices[i] = prices[i-1] + 5
	}
	return prices
}

func TestGenerateRecommendation(t *testing.T) {
	t.Run("empty series", func(t *testing.T) {
		advisor := NewAdvisor(RiskToleranceMedium)
		_, err := advisor.GenerateRecommendation(nil)
		assert.ErrorIs(t, err, ErrEmptySeries)
	})

	t.Run("short neutral series holds", func(t *testing.T) {
		advisor := NewAdvisor(RiskToleranceMedium)
		rec, err := advisor.GenerateRecommendation([]float64{100, 101, 100, 101, 100})
		require.NoError(t, err)
		assert.Equal(t, models.RecommendationHold, rec.Label)
		assert.Equal(t, 100.0, rec.Price)
		assert.Len(t, rec.Explanations, 6)
	})

	t.Run("sustained rally scores buy side", func(t *testing.T) {
		advisor := NewAdvisor(RiskToleranceMedium)
		rec, err := advisor.GenerateRecommendation(rallySeries())
		require.NoError(t, err)
		assert.Greater(t, rec.BuyScore, rec.SellScore)
	})

	t.Run("snapshot mirrors recommendation scores", func(t *testing.T) {
		prices := rallySeries()
		advisor := NewAdvisor(RiskToleranceMedium)
		rec, err := advisor.GenerateRecommendation(prices)
		require.NoError(t, err)

		snapshot := advisor.Snapshot(prices, rec)
		assert.Equal(t, rec.BuyScore, snapshot.BuyScore)
		assert.Equal(t, rec.SellScore, snapshot.SellScore)
		assert.Equal(t, string(indicators.MAAbove), snapshot.MASignal)
	})
}
