package domain

import "github.com/shopspring/decimal"

// Holding is a position in a single instrument. Derived fields are recomputed
// against the latest catalog price, never mutated independently.
type Holding struct {
	Symbol   string `json:"symbol"`
	Quantity int64  `json:"quantity"`
	// AvgPrice quantity-weighted cost basis per unit.
	AvgPrice decimal.Decimal `json:"avgPrice"`

	CurrentPrice decimal.Decimal `json:"currentPrice"`
	CurrentValue decimal.Decimal `json:"currentValue"`
	PL           decimal.Decimal `json:"pl"`
	PLPercent    decimal.Decimal `json:"plPercent"`
}

// CostBasis returns quantity * avgPrice.
func (h *Holding) CostBasis() decimal.Decimal {
	return h.AvgPrice.Mul(decimal.NewFromInt(h.Quantity))
}

// Reprice recomputes the derived fields from the given market price.
func (h *Holding) Reprice(price decimal.Decimal) {
	qty := decimal.NewFromInt(h.Quantity)
	cost := h.CostBasis()

	h.CurrentPrice = price
	h.CurrentValue = price.Mul(qty)
	h.PL = h.CurrentValue.Sub(cost)
	if cost.IsPositive() {
		h.PLPercent = h.PL.Div(cost).Mul(decimal.NewFromInt(100))
	} else {
		h.PLPercent = decimal.Zero
	}
}

// Portfolio is a single simulated account: cash balance plus holdings, unique
// by symbol, in insertion order. Aggregates are pure functions of balance,
// holdings and current prices.
type Portfolio struct {
	Balance  decimal.Decimal `json:"balance"`
	Holdings []Holding       `json:"holdings"`

	TotalValue decimal.Decimal `json:"totalValue"`
	PL         decimal.Decimal `json:"pl"`
	PLPercent  decimal.Decimal `json:"plPercent"`
}

// Holding returns a pointer to the holding for symbol, or nil.
func (p *Portfolio) Holding(symbol string) *Holding {
	for i := range p.Holdings {
		if p.Holdings[i].Symbol == symbol {
			return &p.Holdings[i]
		}
	}
	return nil
}

// RemoveHolding deletes the holding for symbol, preserving order.
func (p *Portfolio) RemoveHolding(symbol string) {
	for i := range p.Holdings {
		if p.Holdings[i].Symbol == symbol {
			p.Holdings = append(p.Holdings[:i], p.Holdings[i+1:]...)
			return
		}
	}
}

// Clone returns a deep copy of the portfolio.
func (p *Portfolio) Clone() Portfolio {
	clone := *p
	clone.Holdings = make([]Holding, len(p.Holdings))
	copy(clone.Holdings, p.Holdings)
	return clone
}
