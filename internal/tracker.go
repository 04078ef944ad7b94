package internal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mkrasov/folio/internal/domain"
	"github.com/mkrasov/folio/internal/services/replay"
	"github.com/mkrasov/folio/internal/services/symbols"
	"github.com/mkrasov/folio/internal/storage/ledger"
)

// SymbolResolver supplies the trading-pair universe to sweep.
type SymbolResolver interface {
	Resolve(ctx context.Context, useCached bool) (symbols.Universe, error)
}

// TradeFetcher retrieves trades across symbols, isolating per-symbol failures.
type TradeFetcher interface {
	FetchAll(ctx context.Context, symbols []string, since time.Time) []domain.TradeRecord
}

// LedgerStore persists the deduplicated trade ledger.
type LedgerStore interface {
	Load() ([]domain.TradeRecord, error)
	Save(records []domain.TradeRecord) error
}

// SnapshotSink persists the replayed snapshot sequence of one sync run.
type SnapshotSink interface {
	SaveRun(runID string, snaps []domain.BalanceSnapshot) error
}

// Tracker runs the trade-ingestion and balance-reconstruction pipeline:
// resolve symbols, fetch trades, merge into the ledger, replay balances.
type Tracker struct {
	resolver  SymbolResolver
	fetcher   TradeFetcher
	ledger    LedgerStore
	snapshots SnapshotSink
	quotes    []string
	logger    *zap.Logger
}

// SyncResult summarizes one pipeline run.
type SyncResult struct {
	RunID         string
	Symbols       int
	CachedSymbols bool
	Fetched       int
	LedgerSize    int
	Snapshots     []domain.BalanceSnapshot
}

// NewTracker creates a tracker over the given collaborators.
func NewTracker(resolver SymbolResolver, fetcher TradeFetcher, ledger LedgerStore,
	snapshots SnapshotSink, quotes []string, logger *zap.Logger) *Tracker {
	return &Tracker{
		resolver:  resolver,
		fetcher:   fetcher,
		ledger:    ledger,
		snapshots: snapshots,
		quotes:    quotes,
		logger:    logger,
	}
}

// Sync executes one full pipeline run. Per-symbol fetch failures never
// abort the run; ledger load/save failures do, because the pipeline cannot
// proceed without its persistence substrate. Re-running Sync is safe: the
// ledger merge is idempotent by (symbol, tradeId) identity.
func (t *Tracker) Sync(ctx context.Context, useCachedSymbols bool, since time.Time) (SyncResult, error) {
	runID := uuid.NewString()
	log := t.logger.With(zap.String("run_id", runID))

	universe, err := t.resolver.Resolve(ctx, useCachedSymbols)
	if err != nil {
		return SyncResult{}, errors.Wrap(err, "resolve symbol universe")
	}
	log.Info("resolved symbol universe",
		zap.Int("symbols", len(universe.Symbols)), zap.Bool("cached", universe.FromCache))

	existing, err := t.ledger.Load()
	if err != nil {
		return SyncResult{}, errors.Wrap(err, "load trade ledger")
	}

	incoming := t.fetcher.FetchAll(ctx, universe.Symbols, since)
	log.Info("fetched trades", zap.Int("trades", len(incoming)))

	merged := ledger.Merge(existing, incoming)
	if err := t.ledger.Save(merged); err != nil {
		return SyncResult{}, errors.Wrap(err, "save trade ledger")
	}

	snaps := replay.Replay(merged, t.quotes)
	if t.snapshots != nil {
		if err := t.snapshots.SaveRun(runID, snaps); err != nil {
			return SyncResult{}, errors.Wrap(err, "persist balance snapshots")
		}
	}
	log.Info("reconstructed balance history",
		zap.Int("ledger_size", len(merged)), zap.Int("snapshots", len(snaps)))

	return SyncResult{
		RunID:         runID,
		Symbols:       len(universe.Symbols),
		CachedSymbols: universe.FromCache,
		Fetched:       len(incoming),
		LedgerSize:    len(merged),
		Snapshots:     snaps,
	}, nil
}
