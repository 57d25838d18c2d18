package ledger

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kimpers/tokentax-scripts/internal/domain"
)

func sampleTrade(hash string) domain.TradeRecord {
	return domain.TradeRecord{
		TxHash:       hash,
		Type:         "Trade",
		BuyAmount:    decimal.RequireFromString("300"),
		BuyCurrency:  "DAI",
		SellAmount:   decimal.RequireFromString("1.5"),
		SellCurrency: "USDC",
		Exchange:     "ZeroEx",
		Comment:      "ZeroEx Tx - " + hash,
		Date:         "2020-09-13 12:26:40",
	}
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read ledger: %v", err)
	}
	return rows
}

func TestCSVWriter_HeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")
	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}

	if err := w.Append(context.Background(), sampleTrade("0x01")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := w.Append(context.Background(), sampleTrade("0x02")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d rows", len(rows))
	}
	for i, col := range Columns {
		if rows[0][i] != col {
			t.Errorf("header column %d: expected %s, got %s", i, col, rows[0][i])
		}
	}
	first := rows[1]
	if first[0] != "Trade" || first[1] != "300" || first[2] != "DAI" {
		t.Errorf("unexpected buy side: %v", first[:3])
	}
	if first[3] != "1.5" || first[4] != "USDC" {
		t.Errorf("unexpected sell side: %v", first[3:5])
	}
	if first[5] != "0" || first[6] != "" {
		t.Errorf("unexpected fee columns: %v", first[5:7])
	}
	if first[9] != "ZeroEx Tx - 0x01" {
		t.Errorf("unexpected comment %q", first[9])
	}
	if first[10] != "2020-09-13 12:26:40" {
		t.Errorf("unexpected date %q", first[10])
	}
}

func TestCSVWriter_ReopenTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")

	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}
	if err := w.Append(context.Background(), sampleTrade("0x01")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// A rerun starts the ledger over instead of appending duplicates.
	w, err = NewCSVWriter(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if err := w.Append(context.Background(), sampleTrade("0x02")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row after reopen, got %d rows", len(rows))
	}
	if rows[1][9] != "ZeroEx Tx - 0x02" {
		t.Errorf("expected only the rerun's trade, got %q", rows[1][9])
	}
}

func TestMulti_FansOut(t *testing.T) {
	a := NewMemory()
	b := NewMemory()
	multi := NewMulti(a, b)

	if err := multi.Append(context.Background(), sampleTrade("0x01")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := multi.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if len(a.Trades()) != 1 || len(b.Trades()) != 1 {
		t.Errorf("expected trade in both sinks, got %d/%d", len(a.Trades()), len(b.Trades()))
	}
}
