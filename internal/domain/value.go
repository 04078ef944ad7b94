package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ValuePoint is the USD valuation of one balance snapshot: a per-asset
// breakdown plus the row total. Assets without a usable price contribute
// zero to the total.
type ValuePoint struct {
	Time   time.Time                  `json:"ts"`
	Assets map[string]decimal.Decimal `json:"assets"`
	Total  decimal.Decimal            `json:"total"`
}
