package domain

import (
	"github.com/shopspring/decimal"
)

// FlattenedLeg is one side of a trade after collapsing a transaction's
// transfers: a single asset and the summed amount of every contributing
// transfer. All contributing transfers must share one asset.
type FlattenedLeg struct {
	Asset  string
	Amount decimal.Decimal
}

// TradeRecord is the output unit, shaped for TokenTax-style CSV import:
// one row per trade. TxHash is carried for sink bookkeeping and is not a
// CSV column; ledger writers ignore fields outside the fixed column set.
type TradeRecord struct {
	TxHash       string
	Type         string
	BuyAmount    decimal.Decimal
	BuyCurrency  string
	SellAmount   decimal.Decimal
	SellCurrency string
	FeeAmount    decimal.Decimal
	FeeCurrency  string
	Exchange     string
	Group        string
	Comment      string
	Date         string
}
