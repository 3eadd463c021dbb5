// Package trades persists resolved trades in a write-ahead log so the ledger
// survives restarts.
package trades

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"

	"github.com/papertrade/papertrade/internal/domain"
)

const (
	DefaultDir   = "./wal/trades"
	segmentLimit = 1000
	maxSegments  = 10

	tradeKeyPrefix = "trade_"
)

// WALStore persists trades in a WAL.
type WALStore struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// NewWALStore initializes a WAL-backed trade store.
func NewWALStore(dir string) (*WALStore, error) {
	if dir == "" {
		dir = DefaultDir
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "trade_",
		SegmentThreshold: segmentLimit,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init trade WAL")
	}

	return &WALStore{wal: wal}, nil
}

// Save writes a resolved trade to the WAL.
func (s *WALStore) Save(trade domain.Trade) error {
	if s == nil || s.wal == nil {
		return errors.New("trade store is not initialized")
	}
	if trade.ID == "" {
		return errors.New("trade id is required")
	}

	payload, err := json.Marshal(trade)
	if err != nil {
		return errors.Wrap(err, "marshal trade")
	}

	key := fmt.Sprintf("%s%s", tradeKeyPrefix, trade.ID)

	s.mu.Lock()
	defer s.mu.Unlock()

	nextIndex := s.wal.CurrentIndex() + 1
	return s.wal.Write(nextIndex, key, payload)
}

// All returns every trade stored in the WAL, oldest first.
func (s *WALStore) All() ([]domain.Trade, error) {
	if s == nil || s.wal == nil {
		return nil, errors.New("trade store is not initialized")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.wal.CurrentIndex()
	out := make([]domain.Trade, 0, current)
	for idx := uint64(1); idx <= current; idx++ {
		key, payload, err := s.wal.Get(idx)
		if err != nil {
			continue
		}
		if !strings.HasPrefix(key, tradeKeyPrefix) {
			continue
		}

		var trade domain.Trade
		if err := json.Unmarshal(payload, &trade); err != nil {
			return nil, errors.Wrap(err, "decode trade")
		}
		out = append(out, trade)
	}

	return out, nil
}

// Close closes the underlying WAL.
func (s *WALStore) Close() error {
	if s == nil || s.wal == nil {
		return errors.New("trade store is not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Close()
}
