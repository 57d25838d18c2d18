// Package postgres mirrors the trade ledger into PostgreSQL, keyed by
// transaction hash so reruns are idempotent.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kimpers/tokentax-scripts/internal/domain"
	"github.com/kimpers/tokentax-scripts/internal/ledger"
)

// Pool wraps pgxpool.Pool for dependency injection.
type Pool struct {
	*pgxpool.Pool
}

// NewPool creates a new Postgres connection pool.
func NewPool(ctx context.Context, dsn string) (*Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// Close closes the connection pool.
func (p *Pool) Close() {
	p.Pool.Close()
}

// Ledger implements ledger.Writer on a trades table.
type Ledger struct {
	pool *Pool
}

// Compile-time interface check.
var _ ledger.Writer = (*Ledger)(nil)

// NewLedger creates a PostgreSQL ledger on the given pool.
func NewLedger(pool *Pool) *Ledger {
	return &Ledger{pool: pool}
}

// Append inserts one trade row. A row for the same transaction hash left
// over from an earlier run is kept as is; trades are immutable once
// constructed.
func (l *Ledger) Append(ctx context.Context, trade domain.TradeRecord) error {
	query := `
		INSERT INTO trades (
			tx_hash, trade_type,
			buy_amount, buy_currency, sell_amount, sell_currency,
			fee_amount, fee_currency,
			exchange, trade_group, comment, trade_date
		) VALUES (
			$1, $2,
			$3, $4, $5, $6,
			$7, $8,
			$9, $10, $11, $12
		)
		ON CONFLICT (tx_hash) DO NOTHING
	`

	_, err := l.pool.Exec(ctx, query,
		trade.TxHash, trade.Type,
		trade.BuyAmount.String(), trade.BuyCurrency, trade.SellAmount.String(), trade.SellCurrency,
		trade.FeeAmount.String(), trade.FeeCurrency,
		trade.Exchange, trade.Group, trade.Comment, trade.Date,
	)
	if err != nil {
		return fmt.Errorf("insert trade %s: %w", trade.TxHash, err)
	}
	return nil
}

// Close releases the connection pool.
func (l *Ledger) Close() error {
	l.pool.Close()
	return nil
}
