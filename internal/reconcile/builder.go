package reconcile

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kimpers/tokentax-scripts/internal/domain"
)

// tradeDateFormat is the human-readable UTC date written to the ledger.
const tradeDateFormat = "2006-01-02 15:04:05"

// BuildTradeRecord maps a flattened (deposit, withdrawal) pair plus
// transaction metadata into the canonical trade row: buy side from the
// deposit leg, sell side from the withdrawal leg, zero fee, and a comment
// embedding the source transaction hash.
func BuildTradeRecord(tradeType, exchange string, rec *domain.TransactionRecord, deposit, withdrawal domain.FlattenedLeg) domain.TradeRecord {
	return domain.TradeRecord{
		TxHash:       rec.Hash,
		Type:         tradeType,
		BuyAmount:    deposit.Amount,
		BuyCurrency:  deposit.Asset,
		SellAmount:   withdrawal.Amount,
		SellCurrency: withdrawal.Asset,
		FeeAmount:    decimal.Zero,
		FeeCurrency:  "",
		Exchange:     exchange,
		Group:        "",
		Comment:      exchange + " Tx - " + rec.Hash,
		Date:         time.Unix(rec.Timestamp, 0).UTC().Format(tradeDateFormat),
	}
}
