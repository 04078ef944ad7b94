// Package fetcher retrieves trade history from the exchange across a broad
// symbol universe, tolerating per-symbol failures.
package fetcher

import (
	"context"
	"time"

	"github.com/mkrasov/folio/internal/clients"
	"github.com/mkrasov/folio/internal/domain"
	"go.uber.org/zap"
)

// TradeSource supplies trade records for one symbol since a point in time.
type TradeSource interface {
	TradesSince(ctx context.Context, symbol string, since time.Time) ([]domain.TradeRecord, error)
}

// Fetcher collects trades across many symbols. One symbol failing must
// never prevent ledger completion for the rest.
type Fetcher struct {
	source TradeSource
	logger *zap.Logger
}

// NewFetcher creates a fetcher over the given trade source.
func NewFetcher(source TradeSource, logger *zap.Logger) *Fetcher {
	return &Fetcher{source: source, logger: logger}
}

// FetchAll retrieves trades with timestamp >= since for every symbol.
// Symbols the exchange does not know (delisted, never listed) are skipped
// silently; any other per-symbol failure is logged and skipped. Output
// ordering across symbols is unspecified; the ledger merge sorts.
func (f *Fetcher) FetchAll(ctx context.Context, symbols []string, since time.Time) []domain.TradeRecord {
	var all []domain.TradeRecord
	for _, symbol := range symbols {
		trades, err := f.source.TradesSince(ctx, symbol, since)
		if err != nil {
			if clients.IsSymbolAbsence(err) {
				f.logger.Debug("symbol has no trade history on exchange", zap.String("symbol", symbol))
				continue
			}
			f.logger.Error("failed to fetch trades, skipping symbol",
				zap.String("symbol", symbol), zap.Error(err))
			continue
		}
		all = append(all, trades...)
	}
	return all
}
