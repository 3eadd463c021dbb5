package advisor

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/papertrade/papertrade/internal/domain"
)

func newOptimizer(t *testing.T, rnd Rand) *Optimizer {
	t.Helper()
	o, err := NewOptimizer(universe(t), rnd, zap.NewNop())
	require.NoError(t, err)
	return o
}

func holdingWithPL(symbol string, plPercent float64) domain.Holding {
	return domain.Holding{
		Symbol:    symbol,
		Quantity:  10,
		AvgPrice:  decimal.NewFromInt(100),
		PLPercent: decimal.NewFromFloat(plPercent),
	}
}

func TestOptimize_SellsLosersAndWinnersBuysOneOutside(t *testing.T) {
	o := newOptimizer(t, &scriptedRand{floats: []float64{0}, ints: []int{0}})

	p := domain.Portfolio{
		Balance: decimal.NewFromInt(25000),
		Holdings: []domain.Holding{
			holdingWithPL("RELIANCE", -8),
			holdingWithPL("TCS", 12),
			holdingWithPL("HDFCBANK", 2),
		},
	}

	plan := o.Optimize(p)

	require.Len(t, plan.Suggestions, 3)
	assert.True(t, plan.RebalancingNeeded)

	// descending priority: buy 8, loss sell 7, gain sell 6
	assert.Equal(t, domain.ActionBuy, plan.Suggestions[0].Action)
	assert.Equal(t, 8, plan.Suggestions[0].Priority)
	assert.Equal(t, "Strong technical indicators and positive market sentiment", plan.Suggestions[0].Rationale)

	assert.Equal(t, domain.ActionSell, plan.Suggestions[1].Action)
	assert.Equal(t, "RELIANCE", plan.Suggestions[1].Symbol)
	assert.Equal(t, 7, plan.Suggestions[1].Priority)
	assert.Equal(t, "Underperforming position with -8.00% loss", plan.Suggestions[1].Rationale)

	assert.Equal(t, domain.ActionSell, plan.Suggestions[2].Action)
	assert.Equal(t, "TCS", plan.Suggestions[2].Symbol)
	assert.Equal(t, 6, plan.Suggestions[2].Priority)
	assert.Equal(t, "Take profits on 12.00% gain", plan.Suggestions[2].Rationale)

	for _, h := range p.Holdings {
		assert.NotEqual(t, h.Symbol, plan.Suggestions[0].Symbol, "buy must target a symbol outside the holdings")
	}
}

func TestOptimize_QuietPortfolio(t *testing.T) {
	o := newOptimizer(t, rand.New(rand.NewSource(3)))

	p := domain.Portfolio{
		Balance: decimal.NewFromInt(25000),
		Holdings: []domain.Holding{
			holdingWithPL("RELIANCE", 1),
			holdingWithPL("TCS", -2),
		},
	}

	plan := o.Optimize(p)

	require.Len(t, plan.Suggestions, 1)
	assert.Equal(t, domain.ActionBuy, plan.Suggestions[0].Action)
	assert.False(t, plan.RebalancingNeeded)
}

func TestOptimize_TruncatesToTopThree(t *testing.T) {
	o := newOptimizer(t, rand.New(rand.NewSource(3)))

	p := domain.Portfolio{
		Balance: decimal.NewFromInt(25000),
		Holdings: []domain.Holding{
			holdingWithPL("RELIANCE", -8),
			holdingWithPL("TCS", -9),
			holdingWithPL("HDFCBANK", 12),
			holdingWithPL("INFY", 15),
		},
	}

	plan := o.Optimize(p)

	require.Len(t, plan.Suggestions, 3)
	assert.True(t, plan.RebalancingNeeded)
	assert.Equal(t, 8, plan.Suggestions[0].Priority)
	assert.Equal(t, 7, plan.Suggestions[1].Priority)
	assert.Equal(t, 7, plan.Suggestions[2].Priority)
	// stable sort keeps holding order among equal priorities
	assert.Equal(t, "RELIANCE", plan.Suggestions[1].Symbol)
	assert.Equal(t, "TCS", plan.Suggestions[2].Symbol)
}

func TestOptimize_BuyFallsBackWhenEverythingHeld(t *testing.T) {
	o := newOptimizer(t, rand.New(rand.NewSource(3)))

	var holdings []domain.Holding
	for _, symbol := range o.catalog.Symbols() {
		holdings = append(holdings, holdingWithPL(symbol, 0))
	}
	p := domain.Portfolio{Balance: decimal.NewFromInt(25000), Holdings: holdings}

	plan := o.Optimize(p)

	require.Len(t, plan.Suggestions, 1)
	assert.Equal(t, domain.ActionBuy, plan.Suggestions[0].Action)
	assert.NotEmpty(t, plan.Suggestions[0].Symbol)
	assert.False(t, plan.RebalancingNeeded)
}

func TestOptimize_EmptyPortfolio(t *testing.T) {
	o := newOptimizer(t, rand.New(rand.NewSource(3)))

	plan := o.Optimize(domain.Portfolio{Balance: decimal.NewFromInt(25000)})

	require.Len(t, plan.Suggestions, 1)
	assert.Equal(t, domain.ActionBuy, plan.Suggestions[0].Action)
	assert.False(t, plan.RebalancingNeeded)
}
