// Package pricer supplies asset prices: daily closing prices for historical
// valuation and spot tickers for the current account report.
package pricer

import (
	"context"
	"time"

	"github.com/mkrasov/folio/internal/clients"
	"github.com/mkrasov/folio/internal/domain"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrNoPrice means the exchange has no candle data for the requested
// symbol and day. It is expected absence, not a failure.
var ErrNoPrice = errors.New("no price data")

// DailyCloseSource supplies the closing price of a symbol for one
// calendar day.
type DailyCloseSource interface {
	DailyClose(ctx context.Context, symbol string, day time.Time) (decimal.Decimal, error)
}

// DailyPricer builds per-asset daily price histories. One blocking call is
// issued per (asset, day); failures for one pair record an explicit missing
// marker instead of aborting the batch.
type DailyPricer struct {
	source DailyCloseSource
	quote  string
	logger *zap.Logger
}

// NewDailyPricer creates a pricer that quotes assets in the given quote
// asset (normally USDT).
func NewDailyPricer(source DailyCloseSource, quote string, logger *zap.Logger) *DailyPricer {
	return &DailyPricer{source: source, quote: quote, logger: logger}
}

// FetchDaily fills a price table with one closing price per (asset, day).
// The quote asset itself is pegged to 1 for every requested day.
func (p *DailyPricer) FetchDaily(ctx context.Context, assets []string, days []time.Time) domain.PriceTable {
	table := make(domain.PriceTable, len(assets))
	for _, asset := range assets {
		history := table.History(asset)

		if asset == p.quote {
			for _, day := range days {
				history.Add(day, decimal.NewFromInt(1))
			}
			continue
		}

		symbol := asset + p.quote
		for _, day := range days {
			price, err := p.source.DailyClose(ctx, symbol, day)
			if err != nil {
				if !errors.Is(err, ErrNoPrice) && !clients.IsSymbolAbsence(err) {
					p.logger.Error("failed to fetch daily close",
						zap.String("symbol", symbol), zap.Time("day", day), zap.Error(err))
				}
				history.AddMissing(day)
				continue
			}
			history.Add(day, price)
		}
	}
	return table
}
