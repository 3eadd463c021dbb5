// Package catalog holds the canonical set of tradable instruments and their
// latest simulated quotes.
package catalog

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/papertrade/papertrade/internal/domain"
)

// historyCap bounds the per-symbol price history ring used by the
// technical analysis layer.
const historyCap = 256

// Catalog is process-wide shared quote state. It is written only by the price
// feed and read by the valuation, broker and advisor layers.
type Catalog struct {
	mu          sync.RWMutex
	order       []string
	instruments map[string]*domain.Instrument
	history     map[string][]decimal.Decimal
}

// New seeds a catalog from the given instruments. Symbols must be unique and
// prices positive; violating either is a configuration error.
func New(seed []domain.Instrument) (*Catalog, error) {
	c := &Catalog{
		instruments: make(map[string]*domain.Instrument, len(seed)),
		history:     make(map[string][]decimal.Decimal, len(seed)),
	}

	for _, inst := range seed {
		if inst.Symbol == "" {
			return nil, errors.New("instrument with empty symbol in catalog seed")
		}
		if _, ok := c.instruments[inst.Symbol]; ok {
			return nil, errors.Errorf("duplicate symbol %s in catalog seed", inst.Symbol)
		}
		if !inst.Price.IsPositive() {
			return nil, errors.Errorf("non-positive seed price for %s: %s", inst.Symbol, inst.Price.String())
		}

		instCopy := inst
		c.order = append(c.order, inst.Symbol)
		c.instruments[inst.Symbol] = &instCopy
		c.history[inst.Symbol] = append(c.history[inst.Symbol], inst.Price)
	}

	return c, nil
}

// List returns all instruments in stable insertion order.
func (c *Catalog) List() []domain.Instrument {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Instrument, 0, len(c.order))
	for _, symbol := range c.order {
		out = append(out, *c.instruments[symbol])
	}
	return out
}

// Get returns the instrument for symbol. Symbols are case-sensitive.
func (c *Catalog) Get(symbol string) (domain.Instrument, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	inst, ok := c.instruments[symbol]
	if !ok {
		return domain.Instrument{}, false
	}
	return *inst, true
}

// Symbols returns the catalog symbols in insertion order.
func (c *Catalog) Symbols() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of instruments.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.order)
}

// SetQuote overwrites the quote fields of an existing instrument and appends
// the price to its history ring. Instruments are never added or removed here.
func (c *Catalog) SetQuote(symbol string, price, change, changePercent decimal.Decimal) error {
	if !price.IsPositive() {
		return errors.Errorf("non-positive price %s for %s", price.String(), symbol)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	inst, ok := c.instruments[symbol]
	if !ok {
		return errors.Errorf("unknown symbol %s", symbol)
	}

	inst.Price = price
	inst.Change = change
	inst.ChangePercent = changePercent

	hist := append(c.history[symbol], price)
	if len(hist) > historyCap {
		hist = hist[len(hist)-historyCap:]
	}
	c.history[symbol] = hist

	return nil
}

// History returns up to n most recent prices for symbol, oldest first.
// Unknown symbols yield an empty slice.
func (c *Catalog) History(symbol string, n int) []decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()

	hist := c.history[symbol]
	if n > 0 && len(hist) > n {
		hist = hist[len(hist)-n:]
	}
	out := make([]decimal.Decimal, len(hist))
	copy(out, hist)
	return out
}
