package symbols

import (
	"context"
	"testing"

	"github.com/mkrasov/folio/internal/storage/symbolcache"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	symbols []SymbolStatus
	err     error
	calls   int
}

func (f *fakeSource) ListSymbols(context.Context) ([]SymbolStatus, error) {
	f.calls++
	return f.symbols, f.err
}

type fakeCache struct {
	symbols []string
	loadErr error
	saved   [][]string
}

func (f *fakeCache) Load() ([]string, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.symbols, nil
}

func (f *fakeCache) Save(symbols []string) error {
	f.saved = append(f.saved, symbols)
	return nil
}

var quotes = []string{"USDT", "USDC", "BUSD"}

func TestResolveCacheHitDoesNotFetchOrWrite(t *testing.T) {
	source := &fakeSource{}
	cache := &fakeCache{symbols: []string{"BTCUSDT", "ETHUSDT"}}
	r := NewResolver(source, cache, quotes, zap.NewNop())

	universe, err := r.Resolve(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, universe.FromCache)
	assert.Equal(t, []string{"BTCUSDT", "ETHUSDT"}, universe.Symbols)
	assert.Zero(t, source.calls)
	assert.Empty(t, cache.saved)
}

func TestResolveCorruptCacheDegradesToEmpty(t *testing.T) {
	source := &fakeSource{symbols: []SymbolStatus{{Symbol: "BTCUSDT", Status: "TRADING"}}}
	cache := &fakeCache{loadErr: errors.New("unexpected end of JSON input")}
	r := NewResolver(source, cache, quotes, zap.NewNop())

	universe, err := r.Resolve(context.Background(), true)
	require.NoError(t, err, "corrupt cache must never fail resolution")
	assert.True(t, universe.FromCache)
	assert.Empty(t, universe.Symbols)
	assert.Zero(t, source.calls, "corrupt cache must not trigger a fetch")
}

func TestResolveMissingCacheFallsThroughToFetch(t *testing.T) {
	source := &fakeSource{symbols: []SymbolStatus{{Symbol: "BTCUSDT", Status: "TRADING"}}}
	cache := &fakeCache{loadErr: symbolcache.ErrNotFound}
	r := NewResolver(source, cache, quotes, zap.NewNop())

	universe, err := r.Resolve(context.Background(), true)
	require.NoError(t, err)
	assert.False(t, universe.FromCache)
	assert.Equal(t, []string{"BTCUSDT"}, universe.Symbols)
	require.Len(t, cache.saved, 1)
}

func TestResolveFetchFiltersAndPersists(t *testing.T) {
	source := &fakeSource{symbols: []SymbolStatus{
		{Symbol: "BTCUSDT", Status: "TRADING"},
		{Symbol: "OLDUSDT", Status: "BREAK"},
		{Symbol: "ETHBTC", Status: "TRADING"},
		{Symbol: "LTCBUSD", Status: "TRADING"},
	}}
	cache := &fakeCache{}
	r := NewResolver(source, cache, quotes, zap.NewNop())

	universe, err := r.Resolve(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, universe.FromCache)
	assert.Equal(t, []string{"BTCUSDT", "LTCBUSD"}, universe.Symbols)
	require.Len(t, cache.saved, 1)
	assert.Equal(t, universe.Symbols, cache.saved[0])
}

func TestResolveFetchErrorPropagates(t *testing.T) {
	source := &fakeSource{err: errors.New("dial tcp: timeout")}
	r := NewResolver(source, &fakeCache{}, quotes, zap.NewNop())

	_, err := r.Resolve(context.Background(), false)
	assert.Error(t, err)
}
