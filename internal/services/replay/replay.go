// Package replay reconstructs the portfolio's balance history by folding
// over the ordered trade ledger.
package replay

import (
	"github.com/mkrasov/folio/internal/domain"
	"github.com/shopspring/decimal"
)

// Replay applies every trade in order to an empty running balance and
// emits one snapshot per applied trade. Trades whose symbol cannot be
// decomposed against the quote set are skipped without emitting a snapshot
// or touching the running balances. The result depends only on the input
// order, so replaying the same ledger is deterministic.
func Replay(trades []domain.TradeRecord, quotes []string) []domain.BalanceSnapshot {
	running := make(map[string]decimal.Decimal)
	snapshots := make([]domain.BalanceSnapshot, 0, len(trades))

	for _, trade := range trades {
		pair, ok := domain.SplitSymbol(trade.Symbol, quotes)
		if !ok {
			continue
		}

		switch trade.Side {
		case domain.SideBuy:
			running[pair.Base] = running[pair.Base].Add(trade.Quantity)
			running[pair.Quote] = running[pair.Quote].Sub(trade.QuoteQuantity)
		case domain.SideSell:
			running[pair.Base] = running[pair.Base].Sub(trade.Quantity)
			running[pair.Quote] = running[pair.Quote].Add(trade.QuoteQuantity)
		default:
			continue
		}

		// fee comes out of the fee asset even when it is the base or
		// quote of this very trade
		running[trade.FeeAsset] = running[trade.FeeAsset].Sub(trade.Fee)

		snapshots = append(snapshots, domain.NewBalanceSnapshot(trade.Time, running))
	}
	return snapshots
}
