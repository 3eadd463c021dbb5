// Package broker simulates order execution against the quote catalog and the
// owning portfolio.
package broker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/papertrade/papertrade/internal/catalog"
	"github.com/papertrade/papertrade/internal/domain"
)

var (
	// ErrInvalidQuantity order quantity must be a positive integer.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrUnknownInstrument symbol is absent from the catalog.
	ErrUnknownInstrument = errors.New("unknown instrument")
	// ErrUnknownSide order side is neither BUY nor SELL.
	ErrUnknownSide = errors.New("unknown order side")
	// ErrInsufficientHoldings sell quantity exceeds the held quantity.
	ErrInsufficientHoldings = errors.New("insufficient holdings")
	// ErrExecutionFailed the simulated execution outcome was a failure.
	ErrExecutionFailed = errors.New("order execution failed")
)

// executionSuccessRate fraction of valid orders that fill.
const executionSuccessRate = 0.90

// Dice is the outcome randomness source. *rand.Rand satisfies it.
type Dice interface {
	Float64() float64
}

// Recorder receives successfully executed trades. The ledger satisfies it.
type Recorder interface {
	Append(trade domain.Trade) domain.Trade
}

// Broker validates and executes orders, applying fills to the single session
// portfolio it owns. The balance/holding/ledger triplet of a fill is applied
// as one critical section under the broker mutex.
type Broker struct {
	mu        sync.Mutex
	catalog   *catalog.Catalog
	portfolio domain.Portfolio
	recorder  Recorder
	rnd       Dice
	logger    *zap.Logger
}

// New creates a broker owning the given portfolio.
func New(c *catalog.Catalog, portfolio domain.Portfolio, recorder Recorder, rnd Dice, logger *zap.Logger) (*Broker, error) {
	if c == nil {
		return nil, errors.New("catalog is required")
	}
	if rnd == nil {
		return nil, errors.New("randomness source is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Broker{
		catalog:   c,
		portfolio: portfolio.Clone(),
		recorder:  recorder,
		rnd:       rnd,
		logger:    logger,
	}, nil
}

// Portfolio returns a copy of the current portfolio state. Derived values are
// whatever the last revaluation or fill left; callers revalue against the
// catalog for fresh numbers.
func (b *Broker) Portfolio() domain.Portfolio {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.portfolio.Clone()
}

// Execute validates and executes an order. limitPrice overrides the market
// price verbatim when non-nil, so simulated limit orders can fill at arbitrary
// prices. With probability 0.10 the order resolves FAILED: the caller gets
// ErrExecutionFailed and neither the portfolio nor the ledger is touched.
func (b *Broker) Execute(ctx context.Context, symbol string, side domain.Side, quantity int64, limitPrice *decimal.Decimal) (domain.Trade, error) {
	if err := ctx.Err(); err != nil {
		return domain.Trade{}, err
	}

	if quantity <= 0 {
		return domain.Trade{}, errors.Wrapf(ErrInvalidQuantity, "quantity %d", quantity)
	}
	if !side.Valid() {
		return domain.Trade{}, errors.Wrapf(ErrUnknownSide, "side %q", side)
	}

	inst, ok := b.catalog.Get(symbol)
	if !ok {
		return domain.Trade{}, errors.Wrapf(ErrUnknownInstrument, "symbol %q", symbol)
	}

	price := inst.Price
	if limitPrice != nil {
		price = *limitPrice
	}
	if !price.IsPositive() {
		return domain.Trade{}, errors.Wrapf(ErrInvalidQuantity, "non-positive limit price %s", price.String())
	}

	clientOrderID := uuid.New().String()

	trade := domain.Trade{
		Symbol:    symbol,
		Side:      side,
		Quantity:  quantity,
		Price:     price,
		Timestamp: time.Now(),
		Status:    domain.TradeStatusPending,
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if side == domain.SideSell {
		held := b.portfolio.Holding(symbol)
		if held == nil || held.Quantity < quantity {
			have := int64(0)
			if held != nil {
				have = held.Quantity
			}
			return domain.Trade{}, errors.Wrapf(ErrInsufficientHoldings, "have %d, want to sell %d %s", have, quantity, symbol)
		}
	}

	if b.rnd.Float64() >= executionSuccessRate {
		trade.Status = domain.TradeStatusFailed
		b.logger.Info("simulated execution failure",
			zap.String("client_order_id", clientOrderID),
			zap.String("symbol", symbol),
			zap.String("side", string(side)))
		return domain.Trade{}, errors.Wrapf(ErrExecutionFailed, "order %s", clientOrderID)
	}

	switch side {
	case domain.SideBuy:
		b.applyBuy(symbol, quantity, price)
	case domain.SideSell:
		b.applySell(symbol, quantity, price)
	}

	trade.Status = domain.TradeStatusExecuted
	if b.recorder != nil {
		trade = b.recorder.Append(trade)
	}

	b.logger.Info("simulated order executed",
		zap.String("client_order_id", clientOrderID),
		zap.String("trade_id", trade.ID),
		zap.String("symbol", symbol),
		zap.String("side", string(side)),
		zap.Int64("quantity", quantity),
		zap.String("price", price.String()))

	return trade, nil
}

// applyBuy debits cash and merges the fill into the holding with a
// quantity-weighted average cost basis. The balance may go negative:
// insufficient-funds checking is intentionally not enforced.
func (b *Broker) applyBuy(symbol string, quantity int64, price decimal.Decimal) {
	qty := decimal.NewFromInt(quantity)
	b.portfolio.Balance = b.portfolio.Balance.Sub(price.Mul(qty))

	if held := b.portfolio.Holding(symbol); held != nil {
		oldQty := decimal.NewFromInt(held.Quantity)
		totalQty := oldQty.Add(qty)
		held.AvgPrice = held.AvgPrice.Mul(oldQty).Add(price.Mul(qty)).Div(totalQty)
		held.Quantity += quantity
		held.Reprice(held.CurrentPrice)
		return
	}

	holding := domain.Holding{Symbol: symbol, Quantity: quantity, AvgPrice: price}
	holding.Reprice(price)
	b.portfolio.Holdings = append(b.portfolio.Holdings, holding)
}

// applySell credits cash and reduces the holding; a holding whose quantity
// reaches zero is removed. Quantity sufficiency was checked by the caller
// under the same lock.
func (b *Broker) applySell(symbol string, quantity int64, price decimal.Decimal) {
	qty := decimal.NewFromInt(quantity)
	b.portfolio.Balance = b.portfolio.Balance.Add(price.Mul(qty))

	held := b.portfolio.Holding(symbol)
	if held == nil {
		return
	}

	held.Quantity -= quantity
	if held.Quantity <= 0 {
		b.portfolio.RemoveHolding(symbol)
		return
	}
	held.Reprice(held.CurrentPrice)
}
