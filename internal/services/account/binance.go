package account

import (
	"context"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// BinanceBalanceSource implements BalanceSource over the Binance spot
// account endpoint.
type BinanceBalanceSource struct {
	client *binance.Client
}

// NewBinanceBalanceSource creates a Binance-backed balance source.
func NewBinanceBalanceSource(client *binance.Client) *BinanceBalanceSource {
	return &BinanceBalanceSource{client: client}
}

// Balances returns free+locked per asset.
func (b *BinanceBalanceSource) Balances(ctx context.Context) (map[string]decimal.Decimal, error) {
	acc, err := b.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "binance account")
	}

	balances := make(map[string]decimal.Decimal, len(acc.Balances))
	for _, bal := range acc.Balances {
		free, err := decimal.NewFromString(bal.Free)
		if err != nil {
			return nil, errors.Wrapf(err, "parse free balance for %s", bal.Asset)
		}
		locked, err := decimal.NewFromString(bal.Locked)
		if err != nil {
			return nil, errors.Wrapf(err, "parse locked balance for %s", bal.Asset)
		}
		balances[bal.Asset] = free.Add(locked)
	}
	return balances, nil
}
