package ledger

import (
	"context"
	"sync"

	"github.com/kimpers/tokentax-scripts/internal/domain"
)

// Memory is an in-memory ledger, used in tests.
type Memory struct {
	mu     sync.RWMutex
	trades []domain.TradeRecord
}

// Compile-time interface check.
var _ Writer = (*Memory)(nil)

// NewMemory creates a new in-memory ledger.
func NewMemory() *Memory {
	return &Memory{}
}

// Append stores the trade.
func (m *Memory) Append(_ context.Context, trade domain.TradeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trades = append(m.trades, trade)
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}

// Trades returns a copy of the stored trades in write order.
func (m *Memory) Trades() []domain.TradeRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.TradeRecord, len(m.trades))
	copy(out, m.trades)
	return out
}
