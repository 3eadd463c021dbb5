package advisor

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/papertrade/papertrade/internal/catalog"
	"github.com/papertrade/papertrade/internal/domain"
)

const (
	lossThresholdPercent = -5
	gainThresholdPercent = 10

	sellLossPriority = 7
	sellGainPriority = 6
	buyPriority      = 8

	maxSuggestions = 3
)

// Optimizer emits rebalancing suggestions over an existing portfolio.
type Optimizer struct {
	catalog *catalog.Catalog
	rnd     Rand
	logger  *zap.Logger
}

// NewOptimizer creates a portfolio optimizer.
func NewOptimizer(c *catalog.Catalog, rnd Rand, logger *zap.Logger) (*Optimizer, error) {
	if c == nil {
		return nil, errors.New("catalog is required")
	}
	if rnd == nil {
		return nil, errors.New("randomness source is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Optimizer{catalog: c, rnd: rnd, logger: logger}, nil
}

// Optimize inspects every holding and suggests selling positions losing more
// than 5% (priority 7) or gaining more than 10% (priority 6), plus exactly one
// buy of a random symbol outside the current holdings (priority 8).
// Suggestions are sorted by descending priority and truncated to the top 3;
// rebalancing is flagged when more than 2 were generated before truncation.
func (o *Optimizer) Optimize(portfolio domain.Portfolio) domain.RebalancePlan {
	suggestions := make([]domain.Suggestion, 0, len(portfolio.Holdings)+1)

	for _, h := range portfolio.Holdings {
		plPercent, _ := h.PLPercent.Float64()
		switch {
		case plPercent < lossThresholdPercent:
			suggestions = append(suggestions, domain.Suggestion{
				Action:    domain.ActionSell,
				Symbol:    h.Symbol,
				Rationale: fmt.Sprintf("Underperforming position with %.2f%% loss", plPercent),
				Priority:  sellLossPriority,
			})
		case plPercent > gainThresholdPercent:
			suggestions = append(suggestions, domain.Suggestion{
				Action:    domain.ActionSell,
				Symbol:    h.Symbol,
				Rationale: fmt.Sprintf("Take profits on %.2f%% gain", plPercent),
				Priority:  sellGainPriority,
			})
		}
	}

	if symbol, ok := o.pickOutsideHoldings(portfolio); ok {
		suggestions = append(suggestions, domain.Suggestion{
			Action:    domain.ActionBuy,
			Symbol:    symbol,
			Rationale: "Strong technical indicators and positive market sentiment",
			Priority:  buyPriority,
		})
	}

	generated := len(suggestions)

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Priority > suggestions[j].Priority
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	o.logger.Debug("portfolio optimization finished",
		zap.Int("generated", generated),
		zap.Int("returned", len(suggestions)))

	return domain.RebalancePlan{
		Suggestions:       suggestions,
		RebalancingNeeded: generated > 2,
	}
}

// pickOutsideHoldings selects a random catalog symbol the portfolio does not
// hold yet, falling back to any symbol when everything is already held.
func (o *Optimizer) pickOutsideHoldings(portfolio domain.Portfolio) (string, bool) {
	held := make(map[string]struct{}, len(portfolio.Holdings))
	for _, h := range portfolio.Holdings {
		held[h.Symbol] = struct{}{}
	}

	candidates := make([]string, 0, o.catalog.Len())
	for _, symbol := range o.catalog.Symbols() {
		if _, ok := held[symbol]; !ok {
			candidates = append(candidates, symbol)
		}
	}
	if len(candidates) == 0 {
		candidates = o.catalog.Symbols()
	}
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[o.rnd.Intn(len(candidates))], true
}
