package risk

import (
	"fmt"
	"math"
)

// Defaults for stop-loss and take-profit calculations
const (
	DefaultATRMultiplier   = 2.0
	DefaultFixedPercentage = 0.05
	DefaultTrailPercentage = 0.5

	atrPeriod        = 14
	supportWindow    = 5
	supportMinPrices = 30
	maxRiskForMethod = 0.10 // A method is only recommended below 10% risk
)

// DefaultRiskRewardRatios are the standard R-multiples for profit targets.
var DefaultRiskRewardRatios = []float64{1.5, 2.5, 3.5}

// RiskManager computes position sizing, stop-loss levels and profit targets
// from portfolio parameters. All methods are pure with respect to the
// supplied price history.
type RiskManager struct {
	portfolioValue       float64
	maxRiskPerTrade      float64
	maxPortfolioExposure float64
}

func NewRiskManager(portfolioValue, maxRiskPerTrade, maxPortfolioExposure float64) *RiskManager {
	return &RiskManager{
		portfolioValue:       portfolioValue,
		maxRiskPerTrade:      maxRiskPerTrade,
		maxPortfolioExposure: maxPortfolioExposure,
	}
}

// UpdatePortfolioValue sets a new total portfolio value.
func (m *RiskManager) UpdatePortfolioValue(portfolioValue float64) {
	m.portfolioValue = portfolioValue
}

// CalculatePositionSize sizes a long position so the loss at the stop price
// equals the per-trade risk budget. When the resulting dollar size exceeds
// the exposure cap, the position is clamped to the cap and the actual risk
// recomputed from the clamped size; the clamp always wins over the raw
// risk-based size.
func (m *RiskManager) CalculatePositionSize(entryPrice, stopLossPrice float64) (*PositionSize, error) {
	if m.portfolioValue <= 0 {
		return nil, fmt.Errorf("%w: portfolio value must be positive", ErrInvalidInput)
	}
	if entryPrice <= stopLossPrice {
		return nil, fmt.Errorf("%w: entry price must be greater than stop-loss price", ErrInvalidInput)
	}

	riskAmount := m.portfolioValue * m.maxRiskPerTrade
	riskPerCoin := entryPrice - stopLossPrice

	coins := riskAmount / riskPerCoin
	dollars := coins * entryPrice
	maxPositionDollars := m.portfolioValue * m.maxPortfolioExposure

	var explanation string
	if dollars > maxPositionDollars {
		// Clamp to the exposure cap and recompute the actual risk
		dollars = maxPositionDollars
		coins = dollars / entryPrice
		actualRisk := coins * riskPerCoin

		explanation = fmt.Sprintf(
			"Position size was reduced to $%.2f to respect the maximum portfolio exposure limit of %.1f%%. "+
				"This results in an actual risk of $%.2f (%.2f%% of portfolio).",
			dollars, m.maxPortfolioExposure*100,
			actualRisk, actualRisk/m.portfolioValue*100)
		riskAmount = actualRisk
	} else {
		explanation = fmt.Sprintf(
			"Position size of $%.2f respects the maximum risk per trade of %.1f%% ($%.2f) "+
				"and is within the maximum portfolio exposure limit of %.1f%% ($%.2f).",
			dollars, m.maxRiskPerTrade*100, riskAmount,
			m.maxPortfolioExposure*100, maxPositionDollars)
	}

	return &PositionSize{
		Coins:               coins,
		Dollars:             dollars,
		RiskAmount:          riskAmount,
		RiskPerCoin:         riskPerCoin,
		PortfolioPercentage: dollars / m.portfolioValue,
		MaxPositionDollars:  maxPositionDollars,
		Explanation:         explanation,
	}, nil
}

// CalculateStopLoss computes every stop-loss method the available history
// allows. The fixed-percentage method is always present; the ATR-based
// method needs at least 14 samples and the support-based one at least 30.
// The recommended method is the ATR-based stop when its risk stays at or
// below 10%, then the support-based one under the same bound, then the
// fixed-percentage fallback.
func (m *RiskManager) CalculateStopLoss(entryPrice float64, historicalPrices []float64, atrMultiplier, fixedPercentage float64) *StopLossResult {
	result := &StopLossResult{
		EntryPrice: entryPrice,
		Methods:    make(map[string]StopLossMethod),
	}

	// Method 1: fixed percentage below entry
	fixedStop := entryPrice * (1 - fixedPercentage)
	result.Methods[MethodFixedPercentage] = StopLossMethod{
		StopPrice:      fixedStop,
		RiskAmount:     entryPrice - fixedStop,
		RiskPercentage: (entryPrice - fixedStop) / entryPrice,
		Explanation:    fmt.Sprintf("Fixed %.1f%% stop-loss below entry price", fixedPercentage*100),
	}

	// Method 2: ATR-based
	if len(historicalPrices) >= atrPeriod {
		atr := averageTrueRange(historicalPrices, atrPeriod)
		atrStop := entryPrice - atr*atrMultiplier
		result.Methods[MethodATRBased] = StopLossMethod{
			StopPrice:      atrStop,
			RiskAmount:     entryPrice - atrStop,
			RiskPercentage: (entryPrice - atrStop) / entryPrice,
			ATRValue:       atr,
			Explanation:    fmt.Sprintf("ATR-based stop-loss %.1f x ATR ($%.2f) below entry price", atrMultiplier, atr),
		}

		// Method 3: nearest support below entry
		if len(historicalPrices) >= supportMinPrices {
			if support, ok := nearestSupportBelow(historicalPrices, entryPrice, supportWindow); ok {
				result.Methods[MethodSupportBased] = StopLossMethod{
					StopPrice:      support,
					RiskAmount:     entryPrice - support,
					RiskPercentage: (entryPrice - support) / entryPrice,
					Explanation:    fmt.Sprintf("Support-based stop-loss at nearest support level ($%.2f)", support),
				}
			}
		}
	}

	result.RecommendedMethod = m.recommendMethod(result.Methods)
	result.RecommendedStopPrice = result.Methods[result.RecommendedMethod].StopPrice

	return result
}

func (m *RiskManager) recommendMethod(methods map[string]StopLossMethod) string {
	if atr, ok := methods[MethodATRBased]; ok && atr.RiskPercentage <= maxRiskForMethod {
		return MethodATRBased
	}
	if support, ok := methods[MethodSupportBased]; ok && support.RiskPercentage <= maxRiskForMethod {
		return MethodSupportBased
	}
	return MethodFixedPercentage
}

// CalculateTakeProfitTargets derives profit targets from the initial risk.
// Each target is entry + (entry-stop) * ratio, returned in ratio order.
func (m *RiskManager) CalculateTakeProfitTargets(entryPrice, stopLossPrice float64, riskRewardRatios []float64) (*TakeProfitResult, error) {
	if entryPrice <= stopLossPrice {
		return nil, fmt.Errorf("%w: entry price must be greater than stop-loss price", ErrInvalidInput)
	}

	riskAmount := entryPrice - stopLossPrice

	targets := make([]ProfitTarget, 0, len(riskRewardRatios))
	for _, ratio := range riskRewardRatios {
		targetPrice := entryPrice + riskAmount*ratio
		profit := targetPrice - entryPrice
		targets = append(targets, ProfitTarget{
			Ratio:            ratio,
			TargetPrice:      targetPrice,
			ProfitAmount:     profit,
			ProfitPercentage: profit / entryPrice,
			Explanation:      fmt.Sprintf("%.1fR target (R = $%.2f)", ratio, riskAmount),
		})
	}

	return &TakeProfitResult{
		EntryPrice:     entryPrice,
		StopLossPrice:  stopLossPrice,
		RiskAmount:     riskAmount,
		RiskPercentage: riskAmount / entryPrice,
		Targets:        targets,
	}, nil
}

// CalculateTrailingStop raises the stop to trailPercentage below the current
// price once the position is in profit, but only when the new stop is above
// the existing one. Repeated evaluations can therefore never lower the stop.
func (m *RiskManager) CalculateTrailingStop(entryPrice, currentPrice, initialStopPrice, trailPercentage float64) *TrailingStopResult {
	if currentPrice <= entryPrice {
		return &TrailingStopResult{
			EntryPrice:        entryPrice,
			CurrentPrice:      currentPrice,
			InitialStopPrice:  initialStopPrice,
			TrailingStopPrice: initialStopPrice,
			TrailPercentage:   trailPercentage,
			Explanation:       "Price has not moved above entry point, using initial stop-loss",
		}
	}

	trailAmount := currentPrice * (trailPercentage / 100)
	trailingStop := currentPrice - trailAmount

	result := &TrailingStopResult{
		EntryPrice:       entryPrice,
		CurrentPrice:     currentPrice,
		InitialStopPrice: initialStopPrice,
		TrailPercentage:  trailPercentage,
		TrailAmount:      trailAmount,
	}

	if trailingStop > initialStopPrice {
		result.TrailingStopPrice = trailingStop
		result.IsAdjusted = true
		result.Explanation = fmt.Sprintf(
			"Trailing stop adjusted to $%.2f, which is %.1f%% below the current price of $%.2f",
			trailingStop, trailPercentage, currentPrice)
	} else {
		result.TrailingStopPrice = initialStopPrice
		result.Explanation = "Trailing stop would be lower than initial stop-loss, keeping initial stop"
	}

	return result
}

// CalculatePortfolioExposure reports the portfolio's exposure to the asset
// and how many coins would have to be sold to respect the limit.
func (m *RiskManager) CalculatePortfolioExposure(holdings, currentPrice float64) (*ExposureResult, error) {
	if m.portfolioValue <= 0 {
		return nil, fmt.Errorf("%w: portfolio value must be positive", ErrInvalidInput)
	}

	value := holdings * currentPrice
	exposure := value / m.portfolioValue

	result := &ExposureResult{
		Holdings:           holdings,
		HoldingsValue:      value,
		ExposurePercentage: exposure,
		MaxExposure:        m.maxPortfolioExposure,
		ExceedsLimit:       exposure > m.maxPortfolioExposure,
	}

	if result.ExceedsLimit {
		maxValue := m.portfolioValue * m.maxPortfolioExposure
		maxHoldings := maxValue / currentPrice
		result.AdjustmentNeeded = holdings - maxHoldings
		result.Explanation = fmt.Sprintf(
			"Exposure of %.1f%% exceeds the %.1f%% limit, consider selling %.4f coins",
			exposure*100, m.maxPortfolioExposure*100, result.AdjustmentNeeded)
	} else {
		result.Explanation = fmt.Sprintf(
			"Exposure of %.1f%% is within the %.1f%% limit",
			exposure*100, m.maxPortfolioExposure*100)
	}

	return result, nil
}

// averageTrueRange computes a true-range proxy from a close-only series
// using a 2-sample rolling high/low, then averages the last period ranges.
// With only closes available every true-range term reduces to the absolute
// price change between consecutive samples.
func averageTrueRange(prices []float64, period int) float64 {
	trueRanges := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		high := math.Max(prices[i-1], prices[i])
		low := math.Min(prices[i-1], prices[i])
		prevClose := prices[i-1]

		tr := math.Max(high-low, math.Max(math.Abs(high-prevClose), math.Abs(low-prevClose)))
		trueRanges = append(trueRanges, tr)
	}

	if len(trueRanges) < period {
		period = len(trueRanges)
	}
	sum := 0.0
	for _, tr := range trueRanges[len(trueRanges)-period:] {
		sum += tr
	}
	return sum / float64(period)
}

// nearestSupportBelow finds local minima over the full history and returns
// the highest one strictly below the entry price.
func nearestSupportBelow(prices []float64, entryPrice float64, window int) (float64, bool) {
	best := 0.0
	found := false

	for i := window; i < len(prices)-window; i++ {
		isMin := true
		for j := i - window; j <= i+window && isMin; j++ {
			if j != i && prices[i] > prices[j] {
				isMin = false
			}
		}
		if isMin && prices[i] < entryPrice && prices[i] > best {
			best = prices[i]
			found = true
		}
	}

	return best, found
}
