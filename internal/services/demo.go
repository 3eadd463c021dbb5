package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/papertrade/papertrade/internal/domain"
)

// DemoPortfolio returns the seeded demo account: 25000 cash and five open
// positions against the default instrument universe. Derived fields are left
// zero; the first revaluation fills them in.
func DemoPortfolio() domain.Portfolio {
	return domain.Portfolio{
		Balance: decimal.NewFromInt(25000),
		Holdings: []domain.Holding{
			{Symbol: "RELIANCE", Quantity: 10, AvgPrice: decimal.NewFromFloat(2400.00)},
			{Symbol: "TCS", Quantity: 5, AvgPrice: decimal.NewFromFloat(3500.00)},
			{Symbol: "HDFCBANK", Quantity: 15, AvgPrice: decimal.NewFromFloat(1500.00)},
			{Symbol: "INFY", Quantity: 8, AvgPrice: decimal.NewFromFloat(1200.00)},
			{Symbol: "ICICIBANK", Quantity: 20, AvgPrice: decimal.NewFromFloat(900.00)},
		},
	}
}

// DemoTrades returns a few executed trades that pre-populate the ledger on a
// fresh start, oldest first.
func DemoTrades(now time.Time) []domain.Trade {
	return []domain.Trade{
		{ID: "1", Symbol: "HDFCBANK", Side: domain.SideBuy, Quantity: 5, Price: decimal.NewFromFloat(1550.00), Timestamp: now.Add(-3 * time.Hour), Status: domain.TradeStatusExecuted},
		{ID: "2", Symbol: "TCS", Side: domain.SideSell, Quantity: 3, Price: decimal.NewFromFloat(3470.00), Timestamp: now.Add(-2 * time.Hour), Status: domain.TradeStatusExecuted},
		{ID: "3", Symbol: "RELIANCE", Side: domain.SideBuy, Quantity: 10, Price: decimal.NewFromFloat(2400.00), Timestamp: now.Add(-time.Hour), Status: domain.TradeStatusExecuted},
	}
}
