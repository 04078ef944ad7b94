// Package clients constructs exchange API clients and classifies their errors.
package clients

import (
	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"github.com/pkg/errors"
)

// Binance error code for an unknown or delisted symbol.
const codeInvalidSymbol = -1121

// NewBinanceClient creates a new Binance client using the provided API key and secret.
func NewBinanceClient(apiKey, apiSecret string) *binance.Client {
	return binance.NewClient(apiKey, apiSecret)
}

// IsSymbolAbsence reports whether err means the symbol has no data on the
// exchange (invalid, delisted or never listed). Such errors are expected
// when sweeping a broad symbol universe and are not failures.
func IsSymbolAbsence(err error) bool {
	var apiErr *common.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == codeInvalidSymbol
}
