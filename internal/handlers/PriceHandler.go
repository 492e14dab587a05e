package handlers

import (
	"context"
	"time"

	"ETHInvestBot/internal/operations/price"
	"ETHInvestBot/internal/repositories"

	"github.com/adshao/go-binance/v2"
	"go.uber.org/zap"
)

// historyDays is how much daily history to backfill on startup. The 200-day
// moving average needs at least 200 samples to produce a signal.
const historyDays = 365

type PriceHandler struct {
	priceRepo     *repositories.PriceRepository
	priceFetcher  *price.PriceFetcher
	priceRecorder *price.PriceRecorder
	symbols       []string
	log           *zap.SugaredLogger
}

func NewPriceHandler(client *binance.Client, priceRepo *repositories.PriceRepository, symbols []string, log *zap.SugaredLogger) *PriceHandler {
	fetcher := price.NewPriceFetcher(client, log)
	return &PriceHandler{
		priceRepo:     priceRepo,
		priceFetcher:  fetcher,
		priceRecorder: price.NewPriceRecorder(fetcher, priceRepo, symbols, log),
		symbols:       symbols,
		log:           log,
	}
}

func (h *PriceHandler) Start(ctx context.Context) error {
	// Backfill historical data before analysis can run
	if err := h.fetchHistoricalData(ctx); err != nil {
		return err
	}

	// Keep recording new daily samples in the background
	go h.priceRecorder.StartRecording(ctx, time.Hour)

	return nil
}

func (h *PriceHandler) fetchHistoricalData(ctx context.Context) error {
	for _, symbol := range h.symbols {
		// Skip the backfill when the recorded history is already current;
		// stored samples are keyed by (symbol, timestamp) so a re-run would
		// only refresh existing rows anyway.
		latest, err := h.priceRepo.GetLatestPrice(symbol)
		if err != nil {
			return err
		}
		if latest != nil && time.Since(latest.Timestamp) < 24*time.Hour {
			h.log.Infof("History for %s is current (latest sample %s), skipping backfill",
				symbol, latest.Timestamp.Format("2006-01-02"))
			continue
		}

		prices, err := h.priceFetcher.FetchHistory(ctx, symbol, historyDays)
		if err != nil {
			return err
		}

		if err := h.priceRepo.CreateBatch(prices); err != nil {
			return err
		}
		h.log.Infof("Stored %d historical samples for %s", len(prices), symbol)
	}
	return nil
}
