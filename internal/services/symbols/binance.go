package symbols

import (
	"context"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
)

// BinanceExchangeInfo implements ExchangeInfoSource over the Binance
// exchange-info endpoint.
type BinanceExchangeInfo struct {
	client *binance.Client
}

// NewBinanceExchangeInfo creates a Binance-backed metadata source.
func NewBinanceExchangeInfo(client *binance.Client) *BinanceExchangeInfo {
	return &BinanceExchangeInfo{client: client}
}

// ListSymbols fetches all trading pairs with their current status.
func (b *BinanceExchangeInfo) ListSymbols(ctx context.Context) ([]SymbolStatus, error) {
	info, err := b.client.NewExchangeInfoService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "binance exchange info")
	}

	result := make([]SymbolStatus, 0, len(info.Symbols))
	for _, s := range info.Symbols {
		result = append(result, SymbolStatus{Symbol: s.Symbol, Status: s.Status})
	}
	return result, nil
}
