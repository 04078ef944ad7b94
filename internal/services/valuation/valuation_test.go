package valuation

import (
	"testing"
	"time"

	"github.com/mkrasov/folio/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.Local)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func balances(kv map[string]string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(kv))
	for k, v := range kv {
		out[k] = dec(v)
	}
	return out
}

func TestValuateForwardFillsPrices(t *testing.T) {
	table := make(domain.PriceTable)
	table.History("BTC").Add(day(1), dec("100"))
	table.History("BTC").Add(day(3), dec("110"))

	snaps := []domain.BalanceSnapshot{
		{Time: day(1).Add(10 * time.Hour), Balances: balances(map[string]string{"BTC": "2"})},
		{Time: day(2).Add(10 * time.Hour), Balances: balances(map[string]string{"BTC": "2"})},
		{Time: day(3).Add(10 * time.Hour), Balances: balances(map[string]string{"BTC": "2"})},
	}

	points := Valuate(snaps, table)
	require.Len(t, points, 3)
	assert.True(t, points[0].Total.Equal(dec("200")))
	assert.True(t, points[1].Total.Equal(dec("200")), "day 2 must use day 1's price")
	assert.True(t, points[2].Total.Equal(dec("220")))
}

func TestValuateMissingPriceContributesZero(t *testing.T) {
	table := make(domain.PriceTable)
	table.History("BTC").Add(day(1), dec("100"))
	// ETH never priced

	snaps := []domain.BalanceSnapshot{{
		Time:     day(1).Add(time.Hour),
		Balances: balances(map[string]string{"BTC": "1", "ETH": "10"}),
	}}

	points := Valuate(snaps, table)
	require.Len(t, points, 1)
	assert.True(t, points[0].Assets["ETH"].IsZero(), "missing price degrades the asset to zero, not the row")
	assert.True(t, points[0].Assets["BTC"].Equal(dec("100")))
	assert.True(t, points[0].Total.Equal(dec("100")))
}

func TestValuateAssetPricedOnlyLater(t *testing.T) {
	table := make(domain.PriceTable)
	table.History("BTC").Add(day(2), dec("100"))

	snaps := []domain.BalanceSnapshot{{
		Time:     day(1), // before the first price point
		Balances: balances(map[string]string{"BTC": "1"}),
	}}

	points := Valuate(snaps, table)
	require.Len(t, points, 1)
	assert.True(t, points[0].Total.IsZero())
}

func TestValuateNegativeBalances(t *testing.T) {
	table := make(domain.PriceTable)
	table.History("BTC").Add(day(1), dec("100"))
	table.History("USDT").Add(day(1), dec("1"))

	snaps := []domain.BalanceSnapshot{{
		Time:     day(1).Add(time.Hour),
		Balances: balances(map[string]string{"BTC": "1", "USDT": "-100"}),
	}}

	points := Valuate(snaps, table)
	require.Len(t, points, 1)
	assert.True(t, points[0].Total.IsZero(), "short quote position offsets the base value")
}
