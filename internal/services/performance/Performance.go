package performance

import (
	"math"
	"sort"
	"time"

	"ETHInvestBot/internal/models"
)

// RiskMetricsMinTrades is the ledger size below which volatility, Sharpe
// and drawdown are not reported.
const RiskMetricsMinTrades = 30

// Thresholds for risk metrics and decision evaluation
const (
	riskFreeRate       = 0.02
	tradingDaysPerYear = 252

	buyCorrectThreshold  = 0.02 // BUY is correct above +2% next-period change
	sellCorrectThreshold = -0.02
	holdCorrectThreshold = 0.05 // HOLD is correct within +-5%
)

// CalculatePortfolioValue reduces the trade ledger to net holdings and
// profit/loss figures against the current price. An empty ledger yields a
// zeroed result rather than an error since nothing has been invested yet.
func CalculatePortfolioValue(trades []models.Trade, currentPrice float64) *PortfolioValue {
	pv := &PortfolioValue{CurrentPrice: currentPrice}

	for _, trade := range trades {
		switch trade.Type {
		case models.TradeTypeBuy:
			pv.Balance += trade.Amount
			pv.TotalInvested += trade.Value
		case models.TradeTypeSell:
			pv.Balance -= trade.Amount
			pv.TotalWithdrawn += trade.Value
		}
	}

	pv.CurrentValue = pv.Balance * currentPrice
	pv.RealizedPL = pv.TotalWithdrawn - pv.TotalInvested
	pv.UnrealizedPL = pv.CurrentValue - (pv.TotalInvested - pv.TotalWithdrawn)
	pv.TotalPL = pv.RealizedPL + pv.UnrealizedPL

	if pv.TotalInvested > 0 {
		pv.ROI = pv.TotalPL / pv.TotalInvested
	}

	return pv
}

// CalculatePerformanceMetrics computes the full performance report as of
// the supplied evaluation time. Returns ErrEmptySeries when the ledger is
// empty.
func CalculatePerformanceMetrics(trades []models.Trade, decisions []models.Decision, currentPrice float64, now time.Time) (*Metrics, error) {
	if len(trades) == 0 {
		return nil, ErrEmptySeries
	}

	portfolio := CalculatePortfolioValue(trades, currentPrice)

	sorted := make([]models.Trade, len(trades))
	copy(sorted, trades)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	metrics := &Metrics{
		TotalTrades:  len(sorted),
		RealizedPL:   portfolio.RealizedPL,
		UnrealizedPL: portfolio.UnrealizedPL,
		TotalPL:      portfolio.TotalPL,
		ROI:          portfolio.ROI,
	}

	for _, trade := range sorted {
		switch trade.Type {
		case models.TradeTypeBuy:
			metrics.BuyTrades++
		case models.TradeTypeSell:
			metrics.SellTrades++
		}
	}

	metrics.FirstTradeDate = sorted[0].Date
	metrics.LastTradeDate = sorted[len(sorted)-1].Date
	metrics.DaysInvested = int(now.Sub(metrics.FirstTradeDate).Hours() / 24)

	if metrics.DaysInvested > 0 {
		metrics.AnnualizedReturn = math.Pow(1+portfolio.ROI, 365/float64(metrics.DaysInvested)) - 1
	}

	if len(sorted) >= RiskMetricsMinTrades {
		calculateRiskMetrics(metrics, sorted)
	}

	if len(decisions) > 0 {
		evaluateDecisions(metrics, decisions, currentPrice)
	}

	return metrics, nil
}

// calculateRiskMetrics treats the trade price sequence as a time series to
// derive volatility, Sharpe ratio and maximum drawdown.
func calculateRiskMetrics(metrics *Metrics, sorted []models.Trade) {
	prices := make([]float64, len(sorted))
	for i, trade := range sorted {
		prices[i] = trade.Price
	}

	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] != 0 {
			returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
		}
	}
	if len(returns) < 2 {
		return
	}

	metrics.HasRiskMetrics = true
	metrics.Volatility = sampleStdDev(returns)
	metrics.AnnualizedVolatility = metrics.Volatility * math.Sqrt(tradingDaysPerYear)

	if metrics.AnnualizedVolatility > 0 {
		metrics.SharpeRatio = (metrics.AnnualizedReturn - riskFreeRate) / metrics.AnnualizedVolatility
	}

	// Max drawdown from the running peak
	peak := prices[0]
	maxDrawdown := 0.0
	for _, p := range prices {
		if p > peak {
			peak = p
		}
		drawdown := (p - peak) / peak
		if drawdown < maxDrawdown {
			maxDrawdown = drawdown
		}
	}
	metrics.MaxDrawdown = maxDrawdown
}

// evaluateDecisions scores each decision against its immediate successor in
// the time-ordered log; the last decision is compared against the supplied
// current price.
func evaluateDecisions(metrics *Metrics, decisions []models.Decision, currentPrice float64) {
	evaluations := EvaluateDecisionHistory(decisions, currentPrice)

	metrics.RecommendationCounts = make(map[string]int)
	for _, d := range decisions {
		metrics.RecommendationCounts[d.Recommendation]++
	}

	for _, eval := range evaluations {
		metrics.EvaluatedDecisions++
		if eval.Correct {
			metrics.CorrectDecisions++
		}
	}

	if metrics.EvaluatedDecisions > 0 {
		metrics.DecisionAccuracy = float64(metrics.CorrectDecisions) / float64(metrics.EvaluatedDecisions)
	}
}

// EvaluateDecisionHistory produces a per-decision verdict row for the whole
// log. Evaluation is strictly pairwise over the time-ordered decisions.
func EvaluateDecisionHistory(decisions []models.Decision, currentPrice float64) []DecisionEvaluation {
	if len(decisions) == 0 {
		return nil
	}

	sorted := make([]models.Decision, len(decisions))
	copy(sorted, decisions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	evaluations := make([]DecisionEvaluation, 0, len(sorted))
	for i, decision := range sorted {
		nextPrice := currentPrice
		if i < len(sorted)-1 {
			nextPrice = sorted[i+1].Price
		}

		change := 0.0
		if decision.Price != 0 {
			change = (nextPrice - decision.Price) / decision.Price
		}

		evaluations = append(evaluations, DecisionEvaluation{
			ID:             decision.ID,
			Date:           decision.Date,
			Recommendation: decision.Recommendation,
			Price:          decision.Price,
			NextPrice:      nextPrice,
			PriceChangePct: change,
			Correct:        isDecisionCorrect(decision.Recommendation, change),
		})
	}

	return evaluations
}

func isDecisionCorrect(recommendation string, priceChange float64) bool {
	switch recommendation {
	case models.RecommendationBuy, models.RecommendationStrongBuy:
		return priceChange > buyCorrectThreshold
	case models.RecommendationSell, models.RecommendationStrongSell:
		return priceChange < sellCorrectThreshold
	case models.RecommendationHold:
		return math.Abs(priceChange) < holdCorrectThreshold
	}
	return false
}

// sampleStdDev is the n-1 standard deviation.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	avg := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		diff := v - avg
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(len(values)-1))
}
