package price

import (
	"context"
	"strconv"
	"time"

	"ETHInvestBot/internal/models"

	"github.com/adshao/go-binance/v2"
	"go.uber.org/zap"
)

// klineInterval is the sampling interval for the advisor's price history.
// The analysis works on daily samples (200-day MA, 14-day RSI, etc).
const klineInterval = "1d"

type PriceFetcher struct {
	client *binance.Client
	log    *zap.SugaredLogger
}

func NewPriceFetcher(client *binance.Client, log *zap.SugaredLogger) *PriceFetcher {
	return &PriceFetcher{
		client: client,
		log:    log,
	}
}

// FetchHistory fetches up to days of daily closes for a symbol and maps
// them into chronological Price samples.
func (f *PriceFetcher) FetchHistory(ctx context.Context, symbol string, days int) ([]models.Price, error) {
	endTime := time.Now()
	startTime := endTime.AddDate(0, 0, -days)

	klines, err := f.client.NewKlinesService().
		Symbol(symbol).
		Interval(klineInterval).
		StartTime(startTime.UnixNano() / int64(time.Millisecond)).
		EndTime(endTime.UnixNano() / int64(time.Millisecond)).
		Limit(500).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	prices := make([]models.Price, 0, len(klines))
	for _, k := range klines {
		prices = append(prices, models.Price{
			Symbol:    symbol,
			Timestamp: time.Unix(k.CloseTime/1000, 0),
			Price:     f.parseFloat(k.Close),
			Volume:    f.parseFloat(k.Volume),
		})
	}

	f.log.Infof("Fetched %d daily samples for %s from %s to %s",
		len(prices),
		symbol,
		startTime.Format("2006-01-02"),
		endTime.Format("2006-01-02"))

	return prices, nil
}

// FetchCurrent fetches the most recent daily sample for a symbol.
func (f *PriceFetcher) FetchCurrent(ctx context.Context, symbol string) (*models.Price, error) {
	klines, err := f.client.NewKlinesService().
		Symbol(symbol).
		Interval(klineInterval).
		Limit(1).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	if len(klines) == 0 {
		return nil, nil
	}

	k := klines[0]
	return &models.Price{
		Symbol:    symbol,
		Timestamp: time.Unix(k.CloseTime/1000, 0),
		Price:     f.parseFloat(k.Close),
		Volume:    f.parseFloat(k.Volume),
	}, nil
}

func (f *PriceFetcher) parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		f.log.Errorf("Error parsing float %q: %v", s, err)
		return 0
	}
	return v
}
