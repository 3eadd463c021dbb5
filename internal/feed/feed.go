// Package feed produces bounded pseudo-random quote perturbations on demand.
package feed

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/papertrade/papertrade/internal/catalog"
	"github.com/papertrade/papertrade/internal/domain"
)

// priceFloor is the minimal price a perturbation may produce.
var priceFloor = decimal.NewFromFloat(0.01)

// Rand is the source of perturbation randomness. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Feed advances every catalog quote by a bounded random step each Tick.
// It is pull-based: each call is independent, the only state it touches is
// the catalog. The caller owns any timer driving it.
type Feed struct {
	catalog *catalog.Catalog
	rnd     Rand
	logger  *zap.Logger
}

// New creates a price feed simulator over the given catalog.
func New(c *catalog.Catalog, rnd Rand, logger *zap.Logger) *Feed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{catalog: c, rnd: rnd, logger: logger}
}

// Tick perturbs every instrument once and returns the updated snapshot.
//
// price' = price + U(-5, 5), clamped to a positive floor,
// change' = change + U(-1, 1),
// changePercent' is recomputed from change' and the pre-tick price so it
// stays consistent with change rather than drifting independently.
func (f *Feed) Tick() []domain.Instrument {
	for _, inst := range f.catalog.List() {
		prevPrice := inst.Price

		price := prevPrice.Add(f.uniform(-5, 5))
		if price.LessThan(priceFloor) {
			price = priceFloor
		}

		change := inst.Change.Add(f.uniform(-1, 1))

		changePercent := decimal.Zero
		if prevPrice.IsPositive() {
			changePercent = change.Div(prevPrice).Mul(decimal.NewFromInt(100))
		}

		if err := f.catalog.SetQuote(inst.Symbol, price, change, changePercent); err != nil {
			f.logger.Warn("failed to apply quote perturbation",
				zap.String("symbol", inst.Symbol),
				zap.Error(err))
		}
	}

	return f.catalog.List()
}

func (f *Feed) uniform(lo, hi float64) decimal.Decimal {
	return decimal.NewFromFloat(lo + f.rnd.Float64()*(hi-lo))
}
