// Package ledger maintains the append-only record of resolved orders.
package ledger

import (
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/papertrade/papertrade/internal/domain"
)

// Journal receives every appended trade for durable storage.
type Journal interface {
	Save(trade domain.Trade) error
}

// Ledger is an ordered, append-only audit log of trades. Entries are never
// mutated or removed after append.
type Ledger struct {
	mu      sync.RWMutex
	trades  []domain.Trade
	nextID  uint64
	journal Journal
	logger  *zap.Logger
}

// New creates a ledger. journal may be nil for a purely in-memory ledger.
func New(journal Journal, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{nextID: 1, journal: journal, logger: logger}
}

// Restore seeds the ledger with previously recorded trades, oldest first.
// The id counter is advanced past any numeric ids seen so new appends stay
// monotonic.
func (l *Ledger) Restore(trades []domain.Trade) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, t := range trades {
		l.trades = append(l.trades, t)
		if id, err := strconv.ParseUint(t.ID, 10, 64); err == nil && id >= l.nextID {
			l.nextID = id + 1
		}
	}
}

// Append records a resolved trade, assigning a monotonically increasing id
// when the trade does not carry one. The stored trade is returned.
func (l *Ledger) Append(trade domain.Trade) domain.Trade {
	l.mu.Lock()
	defer l.mu.Unlock()

	if trade.ID == "" {
		trade.ID = strconv.FormatUint(l.nextID, 10)
	}
	l.nextID++

	l.trades = append(l.trades, trade)

	if l.journal != nil {
		if err := l.journal.Save(trade); err != nil {
			l.logger.Warn("failed to journal trade", zap.String("id", trade.ID), zap.Error(err))
		}
	}

	return trade
}

// History returns all trades, most recent first.
func (l *Ledger) History() []domain.Trade {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Trade, len(l.trades))
	for i, t := range l.trades {
		out[len(l.trades)-1-i] = t
	}
	return out
}

// Len returns the number of recorded trades.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.trades)
}
