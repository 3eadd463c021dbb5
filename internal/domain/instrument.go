// Package domain defines core data structures used throughout the trading engine.
package domain

import "github.com/shopspring/decimal"

// Instrument is a tradable stock with its latest simulated quote.
type Instrument struct {
	// Symbol unique ticker symbol, case-sensitive.
	Symbol string `json:"symbol"`
	// Name display name of the company.
	Name string `json:"name"`
	// Price latest simulated price, always positive.
	Price decimal.Decimal `json:"price"`
	// Change absolute price delta from the reference price.
	Change decimal.Decimal `json:"change"`
	// ChangePercent percentage delta derived from Change.
	ChangePercent decimal.Decimal `json:"changePercent"`
	// Volume traded volume, non-negative.
	Volume int64 `json:"volume"`
	// MarketCap market capitalization, non-negative.
	MarketCap decimal.Decimal `json:"marketCap"`
}
