// Package advisor generates heuristic trading recommendations. The output has
// the shape of model-driven advice but is produced by a deterministic-shape
// random heuristic, not by inference.
package advisor

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/papertrade/papertrade/internal/catalog"
	"github.com/papertrade/papertrade/internal/domain"
)

// ErrEmptyUniverse there are no instruments to recommend from.
var ErrEmptyUniverse = errors.New("no instruments in universe")

// action selection bands over a single uniform draw.
const (
	buyBandUpper  = 0.40
	sellBandUpper = 0.70
)

// Rand supplies the advisor's randomness. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Advisor produces ranked recommendations over the catalog universe.
// It is stateless aside from its randomness source.
type Advisor struct {
	catalog *catalog.Catalog
	rnd     Rand
	logger  *zap.Logger
}

// New creates an advisor.
func New(c *catalog.Catalog, rnd Rand, logger *zap.Logger) (*Advisor, error) {
	if c == nil {
		return nil, errors.New("catalog is required")
	}
	if rnd == nil {
		return nil, errors.New("randomness source is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Advisor{catalog: c, rnd: rnd, logger: logger}, nil
}

// Recommend produces a single recommendation for the given risk tolerance.
// portfolio may be nil; budget is advisory context only. Two calls with the
// same inputs are not required to agree.
//
// Confidence bands per action: BUY 60-90, SELL 55-90, HOLD 70-95. A Low risk
// tolerance caps confidence at 75, High raises it to at least 65, Medium
// applies no clamp. The risk field always echoes the caller's tolerance.
func (a *Advisor) Recommend(portfolio *domain.Portfolio, risk domain.RiskLevel, budget decimal.Decimal) (domain.Advice, error) {
	if _, err := domain.ParseRiskLevel(string(risk)); err != nil {
		return domain.Advice{}, err
	}

	symbols := a.catalog.Symbols()
	if len(symbols) == 0 {
		return domain.Advice{}, ErrEmptyUniverse
	}
	symbol := symbols[a.rnd.Intn(len(symbols))]

	var (
		action     domain.Action
		confidence float64
	)
	switch r := a.rnd.Float64(); {
	case r < buyBandUpper:
		action = domain.ActionBuy
		confidence = 60 + a.rnd.Float64()*30
	case r < sellBandUpper:
		action = domain.ActionSell
		confidence = 55 + a.rnd.Float64()*35
	default:
		action = domain.ActionHold
		confidence = 70 + a.rnd.Float64()*25
	}

	rationale := a.rationale(action, symbol, risk)

	switch risk {
	case domain.RiskLow:
		confidence = math.Min(confidence, 75)
	case domain.RiskHigh:
		confidence = math.Max(confidence, 65)
	}

	advice := domain.Advice{
		Action:     action,
		Symbol:     symbol,
		Rationale:  rationale,
		Confidence: int(math.Round(confidence)),
		Risk:       risk,
		Timestamp:  time.Now(),
	}

	a.logger.Debug("generated recommendation",
		zap.String("symbol", symbol),
		zap.String("action", string(action)),
		zap.Int("confidence", advice.Confidence),
		zap.String("risk", string(risk)),
		zap.String("budget", budget.String()))

	return advice, nil
}
