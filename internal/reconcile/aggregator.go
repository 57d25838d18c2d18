// Package reconcile reconstructs a wallet's trade history from raw feed
// data: it merges the three per-wallet feeds into per-transaction records,
// filters out transactions that did not go through a target contract, and
// collapses each remaining transaction into a single buy/sell pair.
package reconcile

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/kimpers/tokentax-scripts/internal/domain"
)

// TransactionIndex is the aggregation result for one wallet: every
// transaction touched by any feed, keyed by hash, plus the hashes in
// first-seen order for deterministic iteration.
type TransactionIndex struct {
	Records map[string]*domain.TransactionRecord
	Hashes  []string
}

// scaleAmount converts a raw on-chain integer into a token quantity.
func scaleAmount(value *big.Int, decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(value, -decimals)
}

// BuildTransactionIndex folds the three raw feeds for one wallet into a
// unified per-transaction view. The outbound transaction feed is folded
// first so that it owns record creation: records it creates carry the
// initiated-by-wallet flag and the destination contract, and the transfer
// feeds only append to them. Failed on-chain transactions are excluded
// entirely. The wallet address must be lowercase.
func BuildTransactionIndex(
	wallet string,
	txs []domain.NormalTransaction,
	tokenTransfers []domain.TokenTransferEvent,
	internalTransfers []domain.InternalTransfer,
) (*TransactionIndex, error) {
	idx := &TransactionIndex{
		Records: make(map[string]*domain.TransactionRecord),
	}

	for _, tx := range txs {
		if tx.Failed {
			continue
		}

		rec := domain.NewTransactionRecord(tx.Hash, tx.Timestamp, tx.To)
		if tx.Value != nil && tx.Value.Sign() > 0 {
			transfer, err := domain.NewTransfer(
				domain.DirectionWithdrawal,
				domain.NativeAsset,
				scaleAmount(tx.Value, domain.NativeAssetDecimals),
			)
			if err != nil {
				return nil, fmt.Errorf("transaction %s: %w", tx.Hash, err)
			}
			rec.AppendTransfer(transfer)
		}

		if _, seen := idx.Records[tx.Hash]; !seen {
			idx.Hashes = append(idx.Hashes, tx.Hash)
		}
		idx.Records[tx.Hash] = rec
	}

	for _, ev := range tokenTransfers {
		direction := domain.DirectionDeposit
		if ev.From == wallet {
			direction = domain.DirectionWithdrawal
		}

		transfer, err := domain.NewTransfer(direction, ev.Symbol, scaleAmount(ev.Value, ev.Decimals))
		if err != nil {
			return nil, fmt.Errorf("token transfer %s: %w", ev.Hash, err)
		}

		idx.record(ev.Hash, ev.Timestamp).AppendTransfer(transfer)
	}

	for _, in := range internalTransfers {
		transfer, err := domain.NewTransfer(
			domain.DirectionDeposit,
			domain.NativeAsset,
			scaleAmount(in.Value, domain.NativeAssetDecimals),
		)
		if err != nil {
			return nil, fmt.Errorf("internal transfer %s: %w", in.Hash, err)
		}

		idx.record(in.Hash, in.Timestamp).AppendTransfer(transfer)
	}

	return idx, nil
}

// record returns the existing record for a hash or creates an observed one.
// Creation never overwrites the initiated flag or destination of a record
// the outbound feed already owns.
func (idx *TransactionIndex) record(hash string, timestamp int64) *domain.TransactionRecord {
	if rec, ok := idx.Records[hash]; ok {
		return rec
	}
	rec := domain.NewObservedTransactionRecord(hash, timestamp)
	idx.Records[hash] = rec
	idx.Hashes = append(idx.Hashes, hash)
	return rec
}
