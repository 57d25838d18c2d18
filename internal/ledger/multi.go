package ledger

import (
	"context"
	"errors"

	"github.com/kimpers/tokentax-scripts/internal/domain"
)

// Multi fans every trade out to several sinks, e.g. the CSV file plus a
// database mirror.
type Multi struct {
	writers []Writer
}

// Compile-time interface check.
var _ Writer = (*Multi)(nil)

// NewMulti creates a ledger writing to all the given sinks.
func NewMulti(writers ...Writer) *Multi {
	return &Multi{writers: writers}
}

// Append writes the trade to every sink, stopping at the first failure.
func (m *Multi) Append(ctx context.Context, trade domain.TradeRecord) error {
	for _, w := range m.writers {
		if err := w.Append(ctx, trade); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink, collecting errors.
func (m *Multi) Close() error {
	var errs []error
	for _, w := range m.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
