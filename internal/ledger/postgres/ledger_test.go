package postgres

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kimpers/tokentax-scripts/internal/domain"
)

func testTrade(hash string) domain.TradeRecord {
	return domain.TradeRecord{
		TxHash:       hash,
		Type:         "Trade",
		BuyAmount:    decimal.RequireFromString("300"),
		BuyCurrency:  "DAI",
		SellAmount:   decimal.RequireFromString("1.5"),
		SellCurrency: "USDC",
		FeeAmount:    decimal.Zero,
		Exchange:     "ZeroEx",
		Comment:      "ZeroEx Tx - " + hash,
		Date:         "2020-09-13 12:26:40",
	}
}

func countTrades(t *testing.T, pool *Pool) int {
	t.Helper()
	var count int
	err := pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM trades").Scan(&count)
	require.NoError(t, err)
	return count
}

func TestLedger_Append(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ledger := NewLedger(pool)
	ctx := context.Background()

	require.NoError(t, ledger.Append(ctx, testTrade("0x01")))
	require.NoError(t, ledger.Append(ctx, testTrade("0x02")))
	require.Equal(t, 2, countTrades(t, pool))

	var buyAmount, sellAmount string
	var comment string
	err := pool.QueryRow(ctx,
		"SELECT buy_amount::text, sell_amount::text, comment FROM trades WHERE tx_hash = $1", "0x01",
	).Scan(&buyAmount, &sellAmount, &comment)
	require.NoError(t, err)
	require.Equal(t, "300", buyAmount)
	require.Equal(t, "1.5", sellAmount)
	require.Equal(t, "ZeroEx Tx - 0x01", comment)
}

func TestLedger_RerunIsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ledger := NewLedger(pool)
	ctx := context.Background()

	require.NoError(t, ledger.Append(ctx, testTrade("0x01")))
	// A rerun replays the same trade; the original row is kept.
	require.NoError(t, ledger.Append(ctx, testTrade("0x01")))
	require.Equal(t, 1, countTrades(t, pool))
}

func TestRunMigrations_Repeatable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	// setupTestDB already ran migrations once.
	require.NoError(t, RunMigrations(context.Background(), pool))
}
