// Package valuation combines balance snapshots with daily price histories
// into a USD value series.
package valuation

import (
	"github.com/mkrasov/folio/internal/domain"
	"github.com/shopspring/decimal"
)

// Valuate prices every snapshot against the table. Prices are forward
// filled per asset; an asset with no price at or before a snapshot's time
// contributes zero to that row rather than failing it.
func Valuate(snapshots []domain.BalanceSnapshot, prices domain.PriceTable) []domain.ValuePoint {
	points := make([]domain.ValuePoint, 0, len(snapshots))
	for _, snap := range snapshots {
		point := domain.ValuePoint{
			Time:   snap.Time,
			Assets: make(map[string]decimal.Decimal, len(snap.Balances)),
		}
		for asset, amount := range snap.Balances {
			var value decimal.Decimal
			if history, ok := prices[asset]; ok {
				if price, ok := history.At(snap.Time); ok {
					value = amount.Mul(price)
				}
			}
			point.Assets[asset] = value
			point.Total = point.Total.Add(value)
		}
		points = append(points, point)
	}
	return points
}
