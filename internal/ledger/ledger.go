// Package ledger provides the trade ledger sinks the batch writes to.
package ledger

import (
	"context"

	"github.com/kimpers/tokentax-scripts/internal/domain"
)

// Writer is a trade ledger sink. Rows are written incrementally, one per
// successful trade, and the sink is closed once at the end of the batch.
type Writer interface {
	Append(ctx context.Context, trade domain.TradeRecord) error
	Close() error
}

// Columns is the fixed column order of the trade ledger. Record fields
// outside this set (TxHash) are ignored by writers, not an error.
var Columns = []string{
	"Type",
	"BuyAmount",
	"BuyCurrency",
	"SellAmount",
	"SellCurrency",
	"FeeAmount",
	"FeeCurrency",
	"Exchange",
	"Group",
	"Comment",
	"Date",
}

// row maps a trade record onto the fixed column order.
func row(trade domain.TradeRecord) []string {
	return []string{
		trade.Type,
		trade.BuyAmount.String(),
		trade.BuyCurrency,
		trade.SellAmount.String(),
		trade.SellCurrency,
		trade.FeeAmount.String(),
		trade.FeeCurrency,
		trade.Exchange,
		trade.Group,
		trade.Comment,
		trade.Date,
	}
}
