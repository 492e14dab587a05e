package price

import (
	"context"
	"time"

	"ETHInvestBot/internal/repositories"

	"go.uber.org/zap"
)

type PriceRecorder struct {
	fetcher   *PriceFetcher
	priceRepo *repositories.PriceRepository
	symbols   []string
	log       *zap.SugaredLogger
}

func NewPriceRecorder(fetcher *PriceFetcher, priceRepo *repositories.PriceRepository, symbols []string, log *zap.SugaredLogger) *PriceRecorder {
	return &PriceRecorder{
		fetcher:   fetcher,
		priceRepo: priceRepo,
		symbols:   symbols,
		log:       log,
	}
}

// StartRecording periodically records the latest daily sample for every
// symbol until the context is cancelled.
func (r *PriceRecorder) StartRecording(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.log.Info("Starting price recording...")

	for {
		select {
		case <-ctx.Done():
			r.log.Info("Stopping price recording...")
			return
		case <-ticker.C:
			r.recordPrices(ctx)
		}
	}
}

func (r *PriceRecorder) recordPrices(ctx context.Context) {
	for _, symbol := range r.symbols {
		sample, err := r.fetcher.FetchCurrent(ctx, symbol)
		if err != nil {
			r.log.Errorf("Error fetching price for %s: %v", symbol, err)
			continue
		}
		if sample == nil {
			continue
		}

		if err := r.priceRepo.Create(sample); err != nil {
			r.log.Errorf("Error saving price for %s: %v", symbol, err)
		} else {
			r.log.Infof("Recorded price for %s: %v", symbol, sample.Price)
		}
	}
}
