package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.Local)
}

func TestPriceHistoryForwardFill(t *testing.T) {
	h := &PriceHistory{}
	h.Add(day(1), decimal.NewFromInt(100))
	h.Add(day(3), decimal.NewFromInt(110))

	// day 2 has no point of its own, day 1's price forward-fills
	price, ok := h.At(day(2).Add(15 * time.Hour))
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromInt(100)), "got %s", price)

	price, ok = h.At(day(3))
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromInt(110)))

	_, ok = h.At(day(1).Add(-time.Hour))
	assert.False(t, ok, "no price exists before the first point")
}

func TestPriceHistoryMissingMarkerIsSkipped(t *testing.T) {
	h := &PriceHistory{}
	h.Add(day(1), decimal.NewFromInt(100))
	h.AddMissing(day(2))

	price, ok := h.At(day(2))
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromInt(100)), "missing day must fill from day 1")
}

func TestPriceHistoryUpsertReplacesDay(t *testing.T) {
	h := &PriceHistory{}
	h.AddMissing(day(1))
	h.Add(day(1), decimal.NewFromInt(42))

	require.Equal(t, 1, h.Len())
	price, ok := h.At(day(1))
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromInt(42)))
}

func TestDays(t *testing.T) {
	snaps := []BalanceSnapshot{
		{Time: day(2).Add(10 * time.Hour)},
		{Time: day(1).Add(3 * time.Hour)},
		{Time: day(1).Add(9 * time.Hour)},
	}
	got := Days(snaps)
	require.Len(t, got, 2)
	assert.Equal(t, day(1), got[0])
	assert.Equal(t, day(2), got[1])
}
