package fetcher

import (
	"context"
	"testing"
	"time"

	"github.com/adshao/go-binance/v2/common"
	"github.com/mkrasov/folio/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTradeSource struct {
	trades map[string][]domain.TradeRecord
	errs   map[string]error
	asked  []string
}

func (f *fakeTradeSource) TradesSince(_ context.Context, symbol string, _ time.Time) ([]domain.TradeRecord, error) {
	f.asked = append(f.asked, symbol)
	if err, ok := f.errs[symbol]; ok {
		return nil, err
	}
	return f.trades[symbol], nil
}

func TestFetchAllIsolatesPerSymbolFailures(t *testing.T) {
	source := &fakeTradeSource{
		trades: map[string][]domain.TradeRecord{
			"BTCUSDT": {{Symbol: "BTCUSDT", TradeID: "1"}},
			"LTCUSDT": {{Symbol: "LTCUSDT", TradeID: "2"}},
		},
		errs: map[string]error{
			"DEADUSDT": &common.APIError{Code: -1121, Message: "Invalid symbol."},
			"ETHUSDT":  errors.New("dial tcp: connection refused"),
		},
	}
	f := NewFetcher(source, zap.NewNop())

	got := f.FetchAll(context.Background(), []string{"BTCUSDT", "DEADUSDT", "ETHUSDT", "LTCUSDT"}, time.Time{})

	require.Len(t, got, 2, "failed symbols must not prevent completion for the rest")
	assert.Equal(t, "1", got[0].TradeID)
	assert.Equal(t, "2", got[1].TradeID)
	assert.Equal(t, []string{"BTCUSDT", "DEADUSDT", "ETHUSDT", "LTCUSDT"}, source.asked)
}

func TestFetchAllEmptyUniverse(t *testing.T) {
	f := NewFetcher(&fakeTradeSource{}, zap.NewNop())
	got := f.FetchAll(context.Background(), nil, time.Now())
	assert.Empty(t, got)
}

func TestFetchAllWrappedAbsenceErrorStillSkipped(t *testing.T) {
	source := &fakeTradeSource{
		errs: map[string]error{
			"DEADUSDT": errors.Wrap(&common.APIError{Code: -1121, Message: "Invalid symbol."}, "list trades"),
		},
	}
	f := NewFetcher(source, zap.NewNop())

	got := f.FetchAll(context.Background(), []string{"DEADUSDT"}, time.Time{})
	assert.Empty(t, got)
}
