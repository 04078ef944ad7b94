package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeLayout is the canonical second-precision encoding of trade timestamps
// in the persisted ledger.
const TimeLayout = "2006-01-02 15:04:05"

// Side of a trade relative to the base asset.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// TradeRecord is one completed spot trade as reported by the exchange.
// Records are immutable once written to the ledger and are uniquely
// identified by (Symbol, TradeID).
type TradeRecord struct {
	Time          time.Time
	Symbol        string
	Side          Side
	Price         decimal.Decimal
	Quantity      decimal.Decimal
	QuoteQuantity decimal.Decimal
	Fee           decimal.Decimal
	FeeAsset      string
	TradeID       string
}

// Key returns the identity of the record used for ledger deduplication.
func (t TradeRecord) Key() string {
	return t.Symbol + "#" + t.TradeID
}
