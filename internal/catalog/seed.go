package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/papertrade/papertrade/internal/domain"
)

// DefaultInstruments returns the built-in demo universe.
func DefaultInstruments() []domain.Instrument {
	return []domain.Instrument{
		{Symbol: "RELIANCE", Name: "Reliance Industries", Price: decimal.NewFromFloat(2456.78), Change: decimal.NewFromFloat(23.45), ChangePercent: decimal.NewFromFloat(0.96), Volume: 12543200, MarketCap: decimal.NewFromInt(1645000000000)},
		{Symbol: "TCS", Name: "Tata Consultancy Services", Price: decimal.NewFromFloat(3456.90), Change: decimal.NewFromFloat(-12.34), ChangePercent: decimal.NewFromFloat(-0.36), Volume: 8765400, MarketCap: decimal.NewFromInt(1280000000000)},
		{Symbol: "HDFCBANK", Name: "HDFC Bank", Price: decimal.NewFromFloat(1567.89), Change: decimal.NewFromFloat(8.76), ChangePercent: decimal.NewFromFloat(0.56), Volume: 15432000, MarketCap: decimal.NewFromInt(987000000000)},
		{Symbol: "INFY", Name: "Infosys", Price: decimal.NewFromFloat(1234.56), Change: decimal.NewFromFloat(15.67), ChangePercent: decimal.NewFromFloat(1.29), Volume: 9876500, MarketCap: decimal.NewFromInt(765000000000)},
		{Symbol: "ICICIBANK", Name: "ICICI Bank", Price: decimal.NewFromFloat(890.12), Change: decimal.NewFromFloat(-5.43), ChangePercent: decimal.NewFromFloat(-0.61), Volume: 12345600, MarketCap: decimal.NewFromInt(654000000000)},
		{Symbol: "HINDUNILVR", Name: "Hindustan Unilever", Price: decimal.NewFromFloat(2345.67), Change: decimal.NewFromFloat(18.90), ChangePercent: decimal.NewFromFloat(0.81), Volume: 3456700, MarketCap: decimal.NewFromInt(543000000000)},
		{Symbol: "SBIN", Name: "State Bank of India", Price: decimal.NewFromFloat(567.89), Change: decimal.NewFromFloat(3.45), ChangePercent: decimal.NewFromFloat(0.61), Volume: 23456700, MarketCap: decimal.NewFromInt(521000000000)},
		{Symbol: "BAJFINANCE", Name: "Bajaj Finance", Price: decimal.NewFromFloat(6789.01), Change: decimal.NewFromFloat(45.67), ChangePercent: decimal.NewFromFloat(0.68), Volume: 1234500, MarketCap: decimal.NewFromInt(432000000000)},
	}
}
