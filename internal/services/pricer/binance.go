package pricer

import (
	"context"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/mkrasov/folio/internal/domain"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// klineInterval trades resolution for request count: 24 hourly candles per
// day, last close approximates the daily close.
const klineInterval = "1h"

// BinanceDailyClose implements DailyCloseSource over the Binance klines
// endpoint.
type BinanceDailyClose struct {
	client *binance.Client
}

// NewBinanceDailyClose creates a Binance-backed daily close source.
func NewBinanceDailyClose(client *binance.Client) *BinanceDailyClose {
	return &BinanceDailyClose{client: client}
}

// DailyClose returns the last hourly close within the given calendar day.
// Days without candles yield ErrNoPrice.
func (b *BinanceDailyClose) DailyClose(ctx context.Context, symbol string, day time.Time) (decimal.Decimal, error) {
	start := domain.Day(day)
	end := start.Add(24 * time.Hour)

	klines, err := b.client.NewKlinesService().
		Symbol(symbol).
		Interval(klineInterval).
		StartTime(start.UnixMilli()).
		EndTime(end.UnixMilli()).
		Do(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if len(klines) == 0 {
		return decimal.Decimal{}, ErrNoPrice
	}

	price, err := decimal.NewFromString(klines[len(klines)-1].Close)
	if err != nil {
		return decimal.Decimal{}, errors.Wrapf(err, "parse close price for %s", symbol)
	}
	return price, nil
}

// BinanceSpotPricer returns current ticker prices for the account report.
type BinanceSpotPricer struct {
	client *binance.Client
}

// NewBinanceSpotPricer creates a Binance-backed spot pricer.
func NewBinanceSpotPricer(client *binance.Client) *BinanceSpotPricer {
	return &BinanceSpotPricer{client: client}
}

// ListPrices returns the current price of every listed symbol.
func (b *BinanceSpotPricer) ListPrices(ctx context.Context) (map[string]decimal.Decimal, error) {
	tickers, err := b.client.NewListPricesService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "binance list prices")
	}

	prices := make(map[string]decimal.Decimal, len(tickers))
	for _, t := range tickers {
		price, err := decimal.NewFromString(t.Price)
		if err != nil {
			return nil, errors.Wrapf(err, "parse ticker price for %s", t.Symbol)
		}
		prices[t.Symbol] = price
	}
	return prices, nil
}
