// Package services wires the simulation components into the call surface the
// presentation layer consumes.
package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/papertrade/papertrade/internal/advisor"
	"github.com/papertrade/papertrade/internal/broker"
	"github.com/papertrade/papertrade/internal/catalog"
	"github.com/papertrade/papertrade/internal/domain"
	"github.com/papertrade/papertrade/internal/feed"
	"github.com/papertrade/papertrade/internal/ledger"
	"github.com/papertrade/papertrade/internal/valuation"
)

// adviceHistoryCap bounds the in-memory advice feed for the activity stream.
const adviceHistoryCap = 50

// Desk is the single-session trading desk: one catalog, one portfolio, one
// ledger. All methods are safe for concurrent use; quote refreshes are
// serialized so interleaved callers do not burn redundant randomness draws.
type Desk struct {
	catalog   *catalog.Catalog
	feed      *feed.Feed
	broker    *broker.Broker
	ledger    *ledger.Ledger
	advisor   *advisor.Advisor
	optimizer *advisor.Optimizer
	logger    *zap.Logger

	refreshMu sync.Mutex

	adviceMu sync.RWMutex
	advices  []domain.Advice
}

// NewDesk assembles the desk from its collaborators.
func NewDesk(
	c *catalog.Catalog,
	f *feed.Feed,
	b *broker.Broker,
	l *ledger.Ledger,
	adv *advisor.Advisor,
	opt *advisor.Optimizer,
	logger *zap.Logger,
) (*Desk, error) {
	if c == nil || f == nil || b == nil || l == nil || adv == nil || opt == nil {
		return nil, errors.New("all desk collaborators are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Desk{
		catalog:   c,
		feed:      f,
		broker:    b,
		ledger:    l,
		advisor:   adv,
		optimizer: opt,
		logger:    logger,
	}, nil
}

// ListQuotes advances the price simulation one tick and returns the full
// quote snapshot in stable catalog order.
func (d *Desk) ListQuotes(ctx context.Context) ([]domain.Instrument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.refreshMu.Lock()
	defer d.refreshMu.Unlock()

	return d.feed.Tick(), nil
}

// GetQuote returns the instrument for symbol, or nil when the symbol is not
// in the catalog. Absence is a valid result, not an error.
func (d *Desk) GetQuote(ctx context.Context, symbol string) (*domain.Instrument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inst, ok := d.catalog.Get(symbol)
	if !ok {
		return nil, nil
	}
	return &inst, nil
}

// GetPortfolio returns the session portfolio revalued against current prices.
func (d *Desk) GetPortfolio(ctx context.Context) (domain.Portfolio, error) {
	if err := ctx.Err(); err != nil {
		return domain.Portfolio{}, err
	}

	return valuation.Revalue(d.broker.Portfolio(), d.catalog), nil
}

// PlaceOrder validates and executes an order. On success the returned trade
// is EXECUTED and already recorded in the ledger; on failure nothing is
// recorded and the prior state is unchanged.
func (d *Desk) PlaceOrder(ctx context.Context, symbol string, side domain.Side, quantity int64, limitPrice *decimal.Decimal) (domain.Trade, error) {
	return d.broker.Execute(ctx, symbol, side, quantity, limitPrice)
}

// TradeHistory returns all recorded trades, most recent first.
func (d *Desk) TradeHistory(ctx context.Context) ([]domain.Trade, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return d.ledger.History(), nil
}

// Recommend produces a heuristic recommendation. riskLevel must be one of
// Low, Medium or High; the current portfolio is passed to the advisor as
// context.
func (d *Desk) Recommend(ctx context.Context, riskLevel string, budget decimal.Decimal) (domain.Advice, error) {
	if err := ctx.Err(); err != nil {
		return domain.Advice{}, err
	}

	risk, err := domain.ParseRiskLevel(riskLevel)
	if err != nil {
		return domain.Advice{}, err
	}

	portfolio := valuation.Revalue(d.broker.Portfolio(), d.catalog)
	advice, err := d.advisor.Recommend(&portfolio, risk, budget)
	if err != nil {
		return domain.Advice{}, err
	}

	d.adviceMu.Lock()
	d.advices = append(d.advices, advice)
	if len(d.advices) > adviceHistoryCap {
		d.advices = d.advices[len(d.advices)-adviceHistoryCap:]
	}
	d.adviceMu.Unlock()

	return advice, nil
}

// Optimize produces rebalancing suggestions for the current portfolio.
func (d *Desk) Optimize(ctx context.Context) (domain.RebalancePlan, error) {
	if err := ctx.Err(); err != nil {
		return domain.RebalancePlan{}, err
	}

	portfolio := valuation.Revalue(d.broker.Portfolio(), d.catalog)
	return d.optimizer.Optimize(portfolio), nil
}

// Analyze returns the technical snapshot for symbol.
func (d *Desk) Analyze(ctx context.Context, symbol string) (domain.TechnicalSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.TechnicalSnapshot{}, err
	}

	return d.advisor.Analyze(symbol)
}

// Sentiment returns the simulated sentiment report for symbol.
func (d *Desk) Sentiment(ctx context.Context, symbol string) (domain.SentimentReport, error) {
	if err := ctx.Err(); err != nil {
		return domain.SentimentReport{}, err
	}

	return d.advisor.Sentiment(symbol), nil
}

// AssessRisk returns the coarse risk assessment for trading symbol.
func (d *Desk) AssessRisk(ctx context.Context, symbol string, side domain.Side) (domain.RiskAssessment, error) {
	if err := ctx.Err(); err != nil {
		return domain.RiskAssessment{}, err
	}

	return d.advisor.AssessRisk(symbol, side)
}

// Activity merges recorded trades and recent recommendations into a single
// tagged feed, most recent first, truncated to limit when limit > 0.
func (d *Desk) Activity(ctx context.Context, limit int) ([]domain.ActivityItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := make([]domain.ActivityItem, 0)
	for _, t := range d.ledger.History() {
		items = append(items, domain.NewTradeActivity(t))
	}

	d.adviceMu.RLock()
	for i := len(d.advices) - 1; i >= 0; i-- {
		items = append(items, domain.NewAdviceActivity(d.advices[i]))
	}
	d.adviceMu.RUnlock()

	sort.SliceStable(items, func(i, j int) bool {
		return activityTime(items[i]).After(activityTime(items[j]))
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func activityTime(item domain.ActivityItem) time.Time {
	switch item.Kind {
	case domain.ActivityKindTrade:
		return item.Trade.Timestamp
	case domain.ActivityKindAdvice:
		return item.Advice.Timestamp
	}
	return time.Time{}
}
