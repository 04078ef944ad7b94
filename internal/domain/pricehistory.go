package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is one daily closing price for an asset, or an explicit
// "no price available" marker for that day.
type PricePoint struct {
	Day     time.Time
	Price   decimal.Decimal
	Missing bool
}

// PriceHistory is a chronological per-asset series of daily price points.
// Lookups forward-fill: the most recent known price at or before the
// requested time wins.
type PriceHistory struct {
	points []PricePoint
}

// Add records a known closing price for a day, replacing any existing
// point for the same day.
func (h *PriceHistory) Add(day time.Time, price decimal.Decimal) {
	h.upsert(PricePoint{Day: day, Price: price})
}

// AddMissing records that no price is available for a day.
func (h *PriceHistory) AddMissing(day time.Time) {
	h.upsert(PricePoint{Day: day, Missing: true})
}

func (h *PriceHistory) upsert(p PricePoint) {
	p.Day = Day(p.Day)
	for i := range h.points {
		if h.points[i].Day.Equal(p.Day) {
			h.points[i] = p
			return
		}
	}
	h.points = append(h.points, p)
	sort.Slice(h.points, func(i, j int) bool {
		return h.points[i].Day.Before(h.points[j].Day)
	})
}

// At returns the forward-filled price at ts: the latest non-missing point
// whose day is at or before ts. ok is false when no prior price exists.
func (h *PriceHistory) At(ts time.Time) (decimal.Decimal, bool) {
	day := Day(ts)
	for i := len(h.points) - 1; i >= 0; i-- {
		p := h.points[i]
		if p.Day.After(day) || p.Missing {
			continue
		}
		return p.Price, true
	}
	return decimal.Decimal{}, false
}

// Len returns the number of recorded points, missing markers included.
func (h *PriceHistory) Len() int { return len(h.points) }

// PriceTable maps asset symbol to its daily price history.
type PriceTable map[string]*PriceHistory

// History returns the history for asset, creating it if absent.
func (t PriceTable) History(asset string) *PriceHistory {
	h, ok := t[asset]
	if !ok {
		h = &PriceHistory{}
		t[asset] = h
	}
	return h
}

// Day truncates ts to midnight in its own location.
func Day(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
}

// Days returns the distinct calendar days covered by the snapshots, in
// chronological order.
func Days(snapshots []BalanceSnapshot) []time.Time {
	seen := make(map[time.Time]struct{})
	var days []time.Time
	for _, s := range snapshots {
		d := Day(s.Time)
		if _, ok := seen[d]; !ok {
			seen[d] = struct{}{}
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
