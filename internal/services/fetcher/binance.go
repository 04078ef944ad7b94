package fetcher

import (
	"context"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/mkrasov/folio/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BinanceTradeSource implements TradeSource over the Binance account trade
// list endpoint.
type BinanceTradeSource struct {
	client *binance.Client
	logger *zap.Logger
}

// NewBinanceTradeSource creates a Binance-backed trade source.
func NewBinanceTradeSource(client *binance.Client, logger *zap.Logger) *BinanceTradeSource {
	return &BinanceTradeSource{client: client, logger: logger}
}

// TradesSince fetches the account's trades for symbol since the given time.
func (b *BinanceTradeSource) TradesSince(ctx context.Context, symbol string, since time.Time) ([]domain.TradeRecord, error) {
	trades, err := b.client.NewListTradesService().
		Symbol(symbol).
		StartTime(since.UnixMilli()).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]domain.TradeRecord, 0, len(trades))
	for _, t := range trades {
		rec, err := b.convert(t)
		if err != nil {
			b.logger.Warn("dropping unparsable trade payload",
				zap.String("symbol", symbol), zap.Int64("trade_id", t.ID), zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (b *BinanceTradeSource) convert(t *binance.TradeV3) (domain.TradeRecord, error) {
	price, err := decimal.NewFromString(t.Price)
	if err != nil {
		return domain.TradeRecord{}, err
	}
	qty, err := decimal.NewFromString(t.Quantity)
	if err != nil {
		return domain.TradeRecord{}, err
	}
	quoteQty, err := decimal.NewFromString(t.QuoteQuantity)
	if err != nil {
		return domain.TradeRecord{}, err
	}
	fee, err := decimal.NewFromString(t.Commission)
	if err != nil {
		return domain.TradeRecord{}, err
	}

	side := domain.SideSell
	if t.IsBuyer {
		side = domain.SideBuy
	}

	return domain.TradeRecord{
		// ledger timestamps carry second precision
		Time:          time.UnixMilli(t.Time).Truncate(time.Second),
		Symbol:        t.Symbol,
		Side:          side,
		Price:         price,
		Quantity:      qty,
		QuoteQuantity: quoteQty,
		Fee:           fee,
		FeeAsset:      t.CommissionAsset,
		TradeID:       strconv.FormatInt(t.ID, 10),
	}, nil
}
