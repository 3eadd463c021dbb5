package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Side order direction.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Valid reports whether the side is a known value.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// TradeStatus lifecycle state of an order. An order is created PENDING and
// resolved to a terminal state before it is returned to the caller.
type TradeStatus string

const (
	TradeStatusPending  TradeStatus = "PENDING"
	TradeStatusExecuted TradeStatus = "EXECUTED"
	TradeStatusFailed   TradeStatus = "FAILED"
)

// Trade is a resolved (or resolving) order.
type Trade struct {
	// ID unique identifier, assigned by the ledger when empty.
	ID        string          `json:"id"`
	Symbol    string          `json:"symbol"`
	Side      Side            `json:"side"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
	Status    TradeStatus     `json:"status"`
}

// String returns a human-readable string representation.
func (t *Trade) String() string {
	return fmt.Sprintf("%s %s qty: %d price: %s status: %s", t.Side, t.Symbol, t.Quantity, t.Price.String(), t.Status)
}
