// Package symbols resolves the universe of trading-pair symbols relevant
// to the portfolio: actively trading pairs quoted in the configured quote
// assets.
package symbols

import (
	"context"
	"strings"

	"github.com/mkrasov/folio/internal/storage/symbolcache"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// statusTrading is the exchange-info status of a pair that is open for trading.
const statusTrading = "TRADING"

// ExchangeInfoSource supplies the exchange's trading-pair metadata.
type ExchangeInfoSource interface {
	// ListSymbols returns all known symbols with their trading status.
	ListSymbols(ctx context.Context) ([]SymbolStatus, error)
}

// SymbolStatus is one trading pair with its exchange status.
type SymbolStatus struct {
	Symbol string
	Status string
}

// CacheStore persists the resolved universe between runs.
type CacheStore interface {
	Load() ([]string, error)
	Save(symbols []string) error
}

// Universe is the result of a resolution: the relevant symbols and whether
// they came from the cache.
type Universe struct {
	Symbols   []string
	FromCache bool
}

// Resolver decides the relevant symbols either from the cached list or by
// querying exchange metadata.
type Resolver struct {
	source ExchangeInfoSource
	cache  CacheStore
	quotes []string
	logger *zap.Logger
}

// NewResolver creates a resolver over the given metadata source and cache.
func NewResolver(source ExchangeInfoSource, cache CacheStore, quotes []string, logger *zap.Logger) *Resolver {
	return &Resolver{source: source, cache: cache, quotes: quotes, logger: logger}
}

// Resolve returns the symbol universe. With useCached set and a cache file
// present, the cached list is returned as-is; an empty or corrupt cache
// degrades to an empty universe with a warning and never fails. The fetch
// path queries exchange metadata, filters to TRADING pairs quoted in the
// configured quote assets and rewrites the cache. The cache-hit path never
// writes.
func (r *Resolver) Resolve(ctx context.Context, useCached bool) (Universe, error) {
	if useCached {
		cached, err := r.cache.Load()
		switch {
		case err == nil:
			if len(cached) == 0 {
				r.logger.Warn("symbol cache is empty, continuing with no symbols")
			}
			return Universe{Symbols: cached, FromCache: true}, nil
		case isCacheMiss(err):
			// no cache yet, fall through to the fetch path
		default:
			r.logger.Warn("symbol cache is corrupt, continuing with no symbols", zap.Error(err))
			return Universe{FromCache: true}, nil
		}
	}

	listed, err := r.source.ListSymbols(ctx)
	if err != nil {
		return Universe{}, errors.Wrap(err, "fetch exchange symbols")
	}

	symbols := make([]string, 0, len(listed))
	for _, s := range listed {
		if s.Status != statusTrading {
			continue
		}
		if !r.hasQuoteSuffix(s.Symbol) {
			continue
		}
		symbols = append(symbols, s.Symbol)
	}

	if err := r.cache.Save(symbols); err != nil {
		return Universe{}, errors.Wrap(err, "persist symbol cache")
	}
	return Universe{Symbols: symbols}, nil
}

func isCacheMiss(err error) bool {
	return errors.Is(err, symbolcache.ErrNotFound)
}

func (r *Resolver) hasQuoteSuffix(symbol string) bool {
	for _, q := range r.quotes {
		if len(q) < len(symbol) && strings.HasSuffix(symbol, q) {
			return true
		}
	}
	return false
}
