package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kimpers/tokentax-scripts/internal/domain"
)

func TestBuildTradeRecord(t *testing.T) {
	rec := &domain.TransactionRecord{
		Hash:      "0xabc123",
		Timestamp: 1600000000, // 2020-09-13 12:26:40 UTC
	}
	deposit := domain.FlattenedLeg{Asset: "TokenY", Amount: decimal.NewFromInt(300)}
	withdrawal := domain.FlattenedLeg{Asset: "TokenX", Amount: decimal.RequireFromString("1.5")}

	trade := BuildTradeRecord("Trade", "ZeroEx", rec, deposit, withdrawal)

	if trade.TxHash != "0xabc123" {
		t.Errorf("expected TxHash 0xabc123, got %s", trade.TxHash)
	}
	if trade.Type != "Trade" {
		t.Errorf("expected type Trade, got %s", trade.Type)
	}
	if trade.BuyAmount.String() != "300" || trade.BuyCurrency != "TokenY" {
		t.Errorf("expected buy 300 TokenY, got %s %s", trade.BuyAmount, trade.BuyCurrency)
	}
	if trade.SellAmount.String() != "1.5" || trade.SellCurrency != "TokenX" {
		t.Errorf("expected sell 1.5 TokenX, got %s %s", trade.SellAmount, trade.SellCurrency)
	}
	if !trade.FeeAmount.IsZero() || trade.FeeCurrency != "" {
		t.Errorf("expected zero fee with empty currency, got %s %s", trade.FeeAmount, trade.FeeCurrency)
	}
	if trade.Exchange != "ZeroEx" {
		t.Errorf("expected exchange ZeroEx, got %s", trade.Exchange)
	}
	if trade.Group != "" {
		t.Errorf("expected empty group, got %s", trade.Group)
	}
	if trade.Comment != "ZeroEx Tx - 0xabc123" {
		t.Errorf("unexpected comment %q", trade.Comment)
	}
	if trade.Date != "2020-09-13 12:26:40" {
		t.Errorf("expected UTC date 2020-09-13 12:26:40, got %s", trade.Date)
	}
}
