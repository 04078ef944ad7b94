package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// dustThreshold is the magnitude below which a running balance is treated
// as rounding residue and dropped from snapshots.
var dustThreshold = decimal.New(1, -10)

// BalanceSnapshot is the full asset balance mapping captured immediately
// after one trade was applied. Snapshots are cumulative, not deltas.
type BalanceSnapshot struct {
	Time     time.Time                  `json:"ts"`
	Balances map[string]decimal.Decimal `json:"balances"`
}

// NewBalanceSnapshot copies the running balances into a snapshot, rounding
// to 8 decimals and dropping entries whose magnitude is at or below the
// dust threshold.
func NewBalanceSnapshot(ts time.Time, running map[string]decimal.Decimal) BalanceSnapshot {
	balances := make(map[string]decimal.Decimal, len(running))
	for asset, amount := range running {
		if amount.Abs().Cmp(dustThreshold) > 0 {
			balances[asset] = amount.Round(8)
		}
	}
	return BalanceSnapshot{Time: ts, Balances: balances}
}

// Assets returns the set of assets that appear in any of the snapshots.
func Assets(snapshots []BalanceSnapshot) []string {
	seen := make(map[string]struct{})
	var assets []string
	for _, s := range snapshots {
		for asset := range s.Balances {
			if _, ok := seen[asset]; !ok {
				seen[asset] = struct{}{}
				assets = append(assets, asset)
			}
		}
	}
	sort.Strings(assets)
	return assets
}

// BalanceSnapshotRecord bundles a snapshot with its storage index.
type BalanceSnapshotRecord struct {
	Index    uint64
	RunID    string
	Snapshot BalanceSnapshot
}
