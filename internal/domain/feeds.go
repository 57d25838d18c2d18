package domain

import "math/big"

// The three raw feed row shapes, as normalized by the chain-data client.
// Addresses are lowercase hex, timestamps unix seconds, values unscaled
// on-chain integers.

// NormalTransaction is one row of the wallet's outbound transaction list.
type NormalTransaction struct {
	Hash      string
	Timestamp int64
	To        string   // destination contract or account
	Value     *big.Int // native value in wei
	Failed    bool     // on-chain error flag
}

// TokenTransferEvent is one row of the wallet's ERC-20 transfer event list,
// covering both inbound and outbound transfers.
type TokenTransferEvent struct {
	Hash      string
	Timestamp int64
	From      string
	To        string
	Symbol    string
	Value     *big.Int // raw token units
	Decimals  int32    // token precision
}

// InternalTransfer is one row of the wallet's inbound native-asset
// internal-transfer list (value received through contract calls).
type InternalTransfer struct {
	Hash      string
	Timestamp int64
	Value     *big.Int // native value in wei
}
