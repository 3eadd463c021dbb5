package web

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/papertrade/papertrade/internal/domain"
)

// Money values are rounded to 2 decimals here, at the presentation boundary
// only; the engine keeps full precision.

type quoteDTO struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume"`
	MarketCap     float64 `json:"marketCap"`
}

func newQuoteDTO(q domain.Instrument) quoteDTO {
	return quoteDTO{
		Symbol:        q.Symbol,
		Name:          q.Name,
		Price:         round2(q.Price),
		Change:        round2(q.Change),
		ChangePercent: round2(q.ChangePercent),
		Volume:        q.Volume,
		MarketCap:     round2(q.MarketCap),
	}
}

type holdingDTO struct {
	Symbol       string  `json:"symbol"`
	Quantity     int64   `json:"quantity"`
	AvgPrice     float64 `json:"avgPrice"`
	CurrentPrice float64 `json:"currentPrice"`
	CurrentValue float64 `json:"currentValue"`
	PL           float64 `json:"pl"`
	PLPercent    float64 `json:"plPercent"`
}

type portfolioDTO struct {
	Balance    float64      `json:"balance"`
	TotalValue float64      `json:"totalValue"`
	PL         float64      `json:"pl"`
	PLPercent  float64      `json:"plPercent"`
	Holdings   []holdingDTO `json:"holdings"`
}

func newPortfolioDTO(p domain.Portfolio) portfolioDTO {
	holdings := make([]holdingDTO, len(p.Holdings))
	for i, h := range p.Holdings {
		holdings[i] = holdingDTO{
			Symbol:       h.Symbol,
			Quantity:     h.Quantity,
			AvgPrice:     round2(h.AvgPrice),
			CurrentPrice: round2(h.CurrentPrice),
			CurrentValue: round2(h.CurrentValue),
			PL:           round2(h.PL),
			PLPercent:    round2(h.PLPercent),
		}
	}
	return portfolioDTO{
		Balance:    round2(p.Balance),
		TotalValue: round2(p.TotalValue),
		PL:         round2(p.PL),
		PLPercent:  round2(p.PLPercent),
		Holdings:   holdings,
	}
}

type tradeDTO struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Side      string    `json:"side"`
	Quantity  int64     `json:"quantity"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

func newTradeDTO(t domain.Trade) tradeDTO {
	return tradeDTO{
		ID:        t.ID,
		Symbol:    t.Symbol,
		Side:      string(t.Side),
		Quantity:  t.Quantity,
		Price:     round2(t.Price),
		Timestamp: t.Timestamp,
		Status:    string(t.Status),
	}
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
