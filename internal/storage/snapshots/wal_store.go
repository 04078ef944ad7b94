// Package snapshots persists reconstructed balance snapshots in a WAL so
// the dashboard can serve the latest reconstruction without refetching.
package snapshots

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/mkrasov/folio/internal/domain"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"
)

const (
	snapshotSegmentLimit = 1000
	snapshotMaxSegments  = 100
	snapshotKeyPrefix    = "portfolio_snapshot_"
)

// WALStore is an append-only store of balance snapshots grouped by sync
// run. Each sync appends its full snapshot sequence under its run id; the
// latest run is the current reconstruction.
type WALStore struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// NewWALStore initializes a WAL-backed snapshot store under the provided directory.
func NewWALStore(dir string) (*WALStore, error) {
	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "snapshot_",
		SegmentThreshold: snapshotSegmentLimit,
		MaxSegments:      snapshotMaxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init snapshot WAL")
	}

	return &WALStore{wal: wal}, nil
}

// SaveRun appends every snapshot of one sync run.
func (s *WALStore) SaveRun(runID string, snaps []domain.BalanceSnapshot) error {
	if s == nil || s.wal == nil {
		return errors.New("snapshot store is not initialized")
	}
	if runID == "" {
		return errors.New("snapshot run id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := snapshotKeyPrefix + runID
	for _, snap := range snaps {
		payload, err := json.Marshal(snap)
		if err != nil {
			return errors.Wrap(err, "marshal balance snapshot")
		}
		if err := s.wal.Write(s.wal.CurrentIndex()+1, key, payload); err != nil {
			return errors.Wrap(err, "append balance snapshot")
		}
	}
	return nil
}

// LatestRun returns the snapshot sequence of the most recent sync run, in
// append order, along with its run id. An empty store yields no records.
func (s *WALStore) LatestRun() (string, []domain.BalanceSnapshot, error) {
	if s == nil || s.wal == nil {
		return "", nil, errors.New("snapshot store is not initialized")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		runID string
		snaps []domain.BalanceSnapshot
	)
	for msg := range s.wal.Iterator() {
		if !strings.HasPrefix(msg.Key, snapshotKeyPrefix) {
			continue
		}
		id := strings.TrimPrefix(msg.Key, snapshotKeyPrefix)
		if id != runID {
			runID = id
			snaps = snaps[:0]
		}
		var snap domain.BalanceSnapshot
		if err := json.Unmarshal(msg.Value, &snap); err != nil {
			return "", nil, errors.Wrap(err, "decode balance snapshot")
		}
		snaps = append(snaps, snap)
	}
	return runID, snaps, nil
}

// Close closes the underlying WAL.
func (s *WALStore) Close() error {
	if s == nil || s.wal == nil {
		return errors.New("snapshot store is not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Close()
}
