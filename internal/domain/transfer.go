package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Direction marks which side of a transaction a transfer sits on,
// from the wallet's point of view.
type Direction string

const (
	DirectionDeposit    Direction = "Deposit"
	DirectionWithdrawal Direction = "Withdrawal"
)

// String returns the string representation of Direction.
func (d Direction) String() string {
	return string(d)
}

// IsValid checks if the direction is a valid value.
func (d Direction) IsValid() bool {
	return d == DirectionDeposit || d == DirectionWithdrawal
}

// Transfer is a single asset movement observed within a transaction.
// Asset is a canonical symbol (see CanonicalSymbol) and Amount is a
// non-negative decimal quantity already scaled by the token's precision.
type Transfer struct {
	Direction Direction
	Asset     string
	Amount    decimal.Decimal
}

// NewTransfer builds a Transfer, collapsing symbol aliases and rejecting
// invalid directions and negative amounts.
func NewTransfer(dir Direction, asset string, amount decimal.Decimal) (Transfer, error) {
	if !dir.IsValid() {
		return Transfer{}, fmt.Errorf("invalid transfer direction %q", dir)
	}
	if amount.IsNegative() {
		return Transfer{}, fmt.Errorf("negative transfer amount %s for %s", amount, asset)
	}
	return Transfer{
		Direction: dir,
		Asset:     CanonicalSymbol(asset),
		Amount:    amount,
	}, nil
}
