package reconcile

import (
	"context"

	"github.com/kimpers/tokentax-scripts/internal/domain"
)

// TransactionSource provides the wallet's outbound transaction list.
type TransactionSource interface {
	NormalTransactions(ctx context.Context, wallet string) ([]domain.NormalTransaction, error)
}

// TokenTransferSource provides the wallet's ERC-20 transfer events,
// inbound and outbound.
type TokenTransferSource interface {
	TokenTransfers(ctx context.Context, wallet string) ([]domain.TokenTransferEvent, error)
}

// InternalTransferSource provides the wallet's inbound native-asset
// internal transfers.
type InternalTransferSource interface {
	InternalTransfers(ctx context.Context, wallet string) ([]domain.InternalTransfer, error)
}

// FeedSource bundles the three bulk feeds one wallet run consumes.
type FeedSource interface {
	TransactionSource
	TokenTransferSource
	InternalTransferSource
}

// ReceiptSource resolves which addresses emitted event logs in a
// transaction. Queried lazily, only for transactions the wallet did not
// initiate.
type ReceiptSource interface {
	LogEmitters(ctx context.Context, txHash string) ([]string, error)
}
