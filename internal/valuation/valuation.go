// Package valuation recomputes portfolio values against current quotes.
package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/papertrade/papertrade/internal/domain"
)

// Quoter provides the latest quote for a symbol.
type Quoter interface {
	Get(symbol string) (domain.Instrument, bool)
}

// Revalue recomputes every holding's derived fields and the portfolio
// aggregates from current catalog prices. Holdings whose symbol is absent
// from the catalog keep their previous values (stale or delisted instrument).
//
// The call is idempotent: revaluing twice against an unchanged catalog yields
// an identical portfolio.
func Revalue(p domain.Portfolio, quotes Quoter) domain.Portfolio {
	out := p.Clone()

	holdingsValue := decimal.Zero
	costBasis := decimal.Zero
	for i := range out.Holdings {
		h := &out.Holdings[i]
		if inst, ok := quotes.Get(h.Symbol); ok {
			h.Reprice(inst.Price)
		}
		holdingsValue = holdingsValue.Add(h.CurrentValue)
		costBasis = costBasis.Add(h.CostBasis())
	}

	out.TotalValue = out.Balance.Add(holdingsValue)

	totalCost := out.Balance.Add(costBasis)
	out.PL = out.TotalValue.Sub(totalCost)
	if totalCost.IsPositive() {
		out.PLPercent = out.PL.Div(totalCost).Mul(decimal.NewFromInt(100))
	} else {
		out.PLPercent = decimal.Zero
	}

	return out
}
