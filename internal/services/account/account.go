// Package account values the current spot account holdings at live ticker
// prices.
package account

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
)

// BalanceSource supplies the account's current per-asset holdings
// (free + locked).
type BalanceSource interface {
	Balances(ctx context.Context) (map[string]decimal.Decimal, error)
}

// PriceSource supplies current prices for every listed symbol.
type PriceSource interface {
	ListPrices(ctx context.Context) (map[string]decimal.Decimal, error)
}

// Holding is one valued spot position.
type Holding struct {
	Asset  string
	Amount decimal.Decimal
	Value  decimal.Decimal
}

// Report is the current account valuation.
type Report struct {
	Holdings []Holding
	Total    decimal.Decimal
}

// Valuer produces spot account reports quoted in the given quote asset.
type Valuer struct {
	balances BalanceSource
	prices   PriceSource
	quote    string
}

// NewValuer creates a account valuer.
func NewValuer(balances BalanceSource, prices PriceSource, quote string) *Valuer {
	return &Valuer{balances: balances, prices: prices, quote: quote}
}

// Value fetches current balances and prices and values every nonzero
// holding that has a quoted market. The quote asset itself is valued at
// face value. Holdings come back sorted by value descending.
func (v *Valuer) Value(ctx context.Context) (Report, error) {
	balances, err := v.balances.Balances(ctx)
	if err != nil {
		return Report{}, err
	}
	prices, err := v.prices.ListPrices(ctx)
	if err != nil {
		return Report{}, err
	}

	var report Report
	for asset, amount := range balances {
		if amount.IsZero() {
			continue
		}

		var value decimal.Decimal
		if asset == v.quote {
			value = amount
		} else if price, ok := prices[asset+v.quote]; ok {
			value = amount.Mul(price)
		} else {
			continue
		}

		report.Holdings = append(report.Holdings, Holding{Asset: asset, Amount: amount, Value: value})
		report.Total = report.Total.Add(value)
	}

	sort.Slice(report.Holdings, func(i, j int) bool {
		return report.Holdings[i].Value.Cmp(report.Holdings[j].Value) > 0
	})
	return report, nil
}
