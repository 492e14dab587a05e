package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatePositionSize(t *testing.T) {
	t.Run("clamps to exposure cap and recomputes risk", func(t *testing.T) {
		manager := NewRiskManager(10000, 0.02, 0.25)

		size, err := manager.CalculatePositionSize(3000, 2800)
		require.NoError(t, err)

		// Raw risk-based size would be $3000; the 25% cap wins
		assert.InDelta(t, 2500.0, size.Dollars, 1e-9)
		assert.InDelta(t, 0.8333, size.Coins, 1e-4)
		assert.InDelta(t, 166.6667, size.RiskAmount, 1e-4)
		assert.InDelta(t, 200.0, size.RiskPerCoin, 1e-9)
		assert.InDelta(t, 0.25, size.PortfolioPercentage, 1e-9)
	})

	t.Run("uses full risk budget when under the cap", func(t *testing.T) {
		manager := NewRiskManager(10000, 0.02, 0.5)

		size, err := manager.CalculatePositionSize(3000, 2800)
		require.NoError(t, err)

		assert.InDelta(t, 1.0, size.Coins, 1e-9)
		assert.InDelta(t, 3000.0, size.Dollars, 1e-9)
		assert.InDelta(t, 200.0, size.RiskAmount, 1e-9)
	})

	t.Run("rejects stop at or above entry", func(t *testing.T) {
		manager := NewRiskManager(10000, 0.02, 0.25)

		_, err := manager.CalculatePositionSize(3000, 3000)
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = manager.CalculatePositionSize(2800, 3000)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects non-positive portfolio", func(t *testing.T) {
		manager := NewRiskManager(0, 0.02, 0.25)

		_, err := manager.CalculatePositionSize(3000, 2800)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCalculateStopLoss(t *testing.T) {
	t.Run("short history falls back to fixed percentage", func(t *testing.T) {
		manager := NewRiskManager(10000, 0.02, 0.25)
		history := []float64{100, 101, 102, 101, 100}

		result := manager.CalculateStopLoss(100, history, DefaultATRMultiplier, DefaultFixedPercentage)

		assert.Equal(t, MethodFixedPercentage, result.RecommendedMethod)
		assert.InDelta(t, 95.0, result.RecommendedStopPrice, 1e-9)
		assert.Len(t, result.Methods, 1)

		fixed := result.Methods[MethodFixedPercentage]
		assert.InDelta(t, 0.05, fixed.RiskPercentage, 1e-9)
	})

	t.Run("calm history recommends the ATR stop", func(t *testing.T) {
		manager := NewRiskManager(10000, 0.02, 0.25)
		history := make([]float64, 30)
		for i := range history {
			history[i] = 71 + float64(i)
		}

		result := manager.CalculateStopLoss(100, history, DefaultATRMultiplier, DefaultFixedPercentage)

		assert.Equal(t, MethodATRBased, result.RecommendedMethod)
		assert.InDelta(t, 98.0, result.RecommendedStopPrice, 1e-9)
		assert.InDelta(t, 1.0, result.Methods[MethodATRBased].ATRValue, 1e-9)
		// Rising series has no local minima, so no support method
		assert.NotContains(t, result.Methods, MethodSupportBased)
	})

	t.Run("wild swings defer to the support stop", func(t *testing.T) {
		manager := NewRiskManager(10000, 0.02, 0.25)
		history := make([]float64, 0, 30)
		for i := 0; i < 16; i++ {
			history = append(history, 100)
		}
		history = append(history, 110, 90, 110, 90, 110, 90, 110, 90, 110, 90, 110, 90, 110, 100)

		result := manager.CalculateStopLoss(100, history, DefaultATRMultiplier, DefaultFixedPercentage)

		// ATR risk is far above 10%, support at 90 is exactly 10%
		assert.Equal(t, MethodSupportBased, result.RecommendedMethod)
		assert.InDelta(t, 90.0, result.RecommendedStopPrice, 1e-9)
		assert.Greater(t, result.Methods[MethodATRBased].RiskPercentage, 0.10)
	})

	t.Run("falls back to fixed when every method risks too much", func(t *testing.T) {
		manager := NewRiskManager(10000, 0.02, 0.25)
		history := make([]float64, 0, 30)
		for i := 0; i < 16; i++ {
			history = append(history, 100)
		}
		history = append(history, 110, 85, 110, 85, 110, 85, 110, 85, 110, 85, 110, 85, 110, 100)

		result := manager.CalculateStopLoss(100, history, DefaultATRMultiplier, DefaultFixedPercentage)

		assert.Equal(t, MethodFixedPercentage, result.RecommendedMethod)
		assert.InDelta(t, 95.0, result.RecommendedStopPrice, 1e-9)
	})
}

func TestCalculateTakeProfitTargets(t *testing.T) {
	t.Run("standard ratio ladder", func(t *testing.T) {
		manager := NewRiskManager(10000, 0.02, 0.25)

		result, err := manager.CalculateTakeProfitTargets(3000, 2800, DefaultRiskRewardRatios)
		require.NoError(t, err)

		require.Len(t, result.Targets, 3)
		assert.InDelta(t, 3300.0, result.Targets[0].TargetPrice, 1e-9)
		assert.InDelta(t, 3500.0, result.Targets[1].TargetPrice, 1e-9)
		assert.InDelta(t, 3700.0, result.Targets[2].TargetPrice, 1e-9)
		assert.InDelta(t, 200.0, result.RiskAmount, 1e-9)
	})

	t.Run("rejects stop at or above entry", func(t *testing.T) {
		manager := NewRiskManager(10000, 0.02, 0.25)

		_, err := manager.CalculateTakeProfitTargets(2800, 3000, DefaultRiskRewardRatios)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCalculateTrailingStop(t *testing.T) {
	manager := NewRiskManager(10000, 0.02, 0.25)

	t.Run("below entry keeps initial stop", func(t *testing.T) {
		result := manager.CalculateTrailingStop(3000, 2900, 2800, DefaultTrailPercentage)
		assert.False(t, result.IsAdjusted)
		assert.InDelta(t, 2800.0, result.TrailingStopPrice, 1e-9)
	})

	t.Run("in profit trails below the current price", func(t *testing.T) {
		result := manager.CalculateTrailingStop(3000, 3200, 2800, DefaultTrailPercentage)
		assert.True(t, result.IsAdjusted)
		assert.InDelta(t, 3184.0, result.TrailingStopPrice, 1e-9)
	})

	t.Run("stop only ever ratchets upward", func(t *testing.T) {
		stop := 2800.0
		previous := stop
		for _, current := range []float64{2900, 3100, 3200, 3150, 3300} {
			result := manager.CalculateTrailingStop(3000, current, stop, DefaultTrailPercentage)
			assert.GreaterOrEqual(t, result.TrailingStopPrice, previous)
			previous = result.TrailingStopPrice
			stop = result.TrailingStopPrice
		}
		assert.InDelta(t, 3283.5, stop, 1e-9)
	})

	t.Run("pullback keeps the ratcheted stop", func(t *testing.T) {
		result := manager.CalculateTrailingStop(3000, 3150, 3184, DefaultTrailPercentage)
		assert.False(t, result.IsAdjusted)
		assert.InDelta(t, 3184.0, result.TrailingStopPrice, 1e-9)
	})
}

func TestCalculatePortfolioExposure(t *testing.T) {
	t.Run("within limit", func(t *testing.T) {
		manager := NewRiskManager(10000, 0.02, 0.25)

		result, err := manager.CalculatePortfolioExposure(0.5, 3000)
		require.NoError(t, err)

		assert.False(t, result.ExceedsLimit)
		assert.InDelta(t, 0.15, result.ExposurePercentage, 1e-9)
		assert.Zero(t, result.AdjustmentNeeded)
	})

	t.Run("over limit reports the excess coins", func(t *testing.T) {
		manager := NewRiskManager(10000, 0.02, 0.25)

		result, err := manager.CalculatePortfolioExposure(10, 300)
		require.NoError(t, err)

		assert.True(t, result.ExceedsLimit)
		assert.InDelta(t, 0.30, result.ExposurePercentage, 1e-9)
		assert.InDelta(t, 1.6667, result.AdjustmentNeeded, 1e-4)
	})

	t.Run("rejects non-positive portfolio", func(t *testing.T) {
		manager := NewRiskManager(0, 0.02, 0.25)

		_, err := manager.CalculatePortfolioExposure(1, 3000)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
