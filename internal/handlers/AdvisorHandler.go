package handlers

import (
	"fmt"
	"time"

	"ETHInvestBot/internal/models"
	"ETHInvestBot/internal/repositories"
	"ETHInvestBot/internal/services/advisor"
	"ETHInvestBot/internal/services/performance"
	"ETHInvestBot/internal/services/risk"

	"go.uber.org/zap"
)

// AdvisorReport bundles everything one analysis run produces.
type AdvisorReport struct {
	Symbol         string
	Recommendation *advisor.Recommendation
	StopLoss       *risk.StopLossResult
	PositionSize   *risk.PositionSize
	TakeProfit     *risk.TakeProfitResult
	Portfolio      *performance.PortfolioValue
	Metrics        *performance.Metrics
}

type AdvisorHandler struct {
	priceRepo    *repositories.PriceRepository
	tradeRepo    *repositories.TradeRepository
	decisionRepo *repositories.DecisionRepository
	advisor      *advisor.Advisor
	riskManager  *risk.RiskManager
	log          *zap.SugaredLogger
}

func NewAdvisorHandler(
	priceRepo *repositories.PriceRepository,
	tradeRepo *repositories.TradeRepository,
	decisionRepo *repositories.DecisionRepository,
	adv *advisor.Advisor,
	riskManager *risk.RiskManager,
	log *zap.SugaredLogger,
) *AdvisorHandler {
	return &AdvisorHandler{
		priceRepo:    priceRepo,
		tradeRepo:    tradeRepo,
		decisionRepo: decisionRepo,
		advisor:      adv,
		riskManager:  riskManager,
		log:          log,
	}
}

// RunAnalysis loads the recorded price history for a symbol, generates a
// recommendation, derives the risk report for an entry at the current
// price, records the decision, and summarizes performance to date.
func (h *AdvisorHandler) RunAnalysis(symbol string) (*AdvisorReport, error) {
	now := time.Now()
	samples, err := h.priceRepo.GetPriceHistory(symbol, now.AddDate(0, 0, -historyDays), now)
	if err != nil {
		return nil, fmt.Errorf("failed to load price history: %w", err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no price history recorded for %s", symbol)
	}

	prices := models.ExtractPrices(samples)
	currentPrice := prices[len(prices)-1]

	rec, err := h.advisor.GenerateRecommendation(prices)
	if err != nil {
		return nil, fmt.Errorf("recommendation failed: %w", err)
	}
	h.log.Infof("%s recommendation for %s at $%.2f (buy %.2f / sell %.2f)",
		rec.Label, symbol, currentPrice, rec.BuyScore, rec.SellScore)

	report := &AdvisorReport{
		Symbol:         symbol,
		Recommendation: rec,
	}

	// Risk report for an entry at the current price
	report.StopLoss = h.riskManager.CalculateStopLoss(
		currentPrice, prices, risk.DefaultATRMultiplier, risk.DefaultFixedPercentage)

	size, err := h.riskManager.CalculatePositionSize(currentPrice, report.StopLoss.RecommendedStopPrice)
	if err != nil {
		// Fall back to the fixed-percentage stop when the recommended one
		// is unusable for sizing
		h.log.Warnf("Position sizing with recommended stop failed: %v", err)
		fixed := report.StopLoss.Methods[risk.MethodFixedPercentage]
		size, err = h.riskManager.CalculatePositionSize(currentPrice, fixed.StopPrice)
		if err != nil {
			return nil, fmt.Errorf("position sizing failed: %w", err)
		}
	}
	report.PositionSize = size

	targets, err := h.riskManager.CalculateTakeProfitTargets(
		currentPrice, report.StopLoss.RecommendedStopPrice, risk.DefaultRiskRewardRatios)
	if err == nil {
		report.TakeProfit = targets
	} else {
		h.log.Warnf("Take-profit calculation skipped: %v", err)
	}

	// Record the decision for later accuracy evaluation
	snapshot := h.advisor.Snapshot(prices, rec)
	if _, err := h.decisionRepo.Record(rec.Label, currentPrice, snapshot, now); err != nil {
		h.log.Errorf("Error recording decision: %v", err)
	}

	// Performance summary over the ledger so far
	tradeCount, err := h.tradeRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count trades: %w", err)
	}
	if tradeCount < performance.RiskMetricsMinTrades {
		h.log.Infof("Risk metrics need %d trades, ledger has %d",
			performance.RiskMetricsMinTrades, tradeCount)
	}

	trades, err := h.tradeRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load trade ledger: %w", err)
	}
	report.Portfolio = performance.CalculatePortfolioValue(trades, currentPrice)

	decisions, err := h.decisionRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load decision log: %w", err)
	}

	metrics, err := performance.CalculatePerformanceMetrics(trades, decisions, currentPrice, now)
	if err != nil {
		h.log.Infof("Performance metrics unavailable: %v", err)
	} else {
		report.Metrics = metrics
	}

	return report, nil
}
