// Package domain defines core data structures used throughout the portfolio tracker.
package domain

import "strings"

// DefaultQuoteAssets is the quote-asset universe assumed when the config
// does not override it.
var DefaultQuoteAssets = []string{"USDT", "USDC", "BUSD"}

// Pair cryptocurrency trading pair.
type Pair struct {
	// Base asset being bought or sold.
	Base string
	// Quote asset denominating the pair.
	Quote string
}

// Symbol returns the concatenated exchange symbol representation.
func (p Pair) Symbol() string {
	return p.Base + p.Quote
}

// String returns the string representation.
func (p Pair) String() string {
	return p.Base + "_" + p.Quote
}

// SplitSymbol decomposes an exchange symbol into a Pair by matching the
// longest quote-asset suffix from quotes. Returns false when no quote
// asset matches, or when the match would consume the whole symbol.
func SplitSymbol(symbol string, quotes []string) (Pair, bool) {
	var best string
	for _, q := range quotes {
		if len(q) > len(best) && len(q) < len(symbol) && strings.HasSuffix(symbol, q) {
			best = q
		}
	}
	if best == "" {
		return Pair{}, false
	}
	return Pair{Base: strings.TrimSuffix(symbol, best), Quote: best}, true
}
