package reconcile

import (
	"context"
	"errors"
	"strings"

	"github.com/kimpers/tokentax-scripts/internal/domain"
)

// Filter decides whether a transaction record belongs to the tracked
// protocol. For transactions the wallet initiated the destination contract
// settles it; otherwise the transaction's receipt is fetched and checked
// for an event log emitted by a target contract.
type Filter struct {
	targets  map[string]struct{}
	receipts ReceiptSource
}

// NewFilter creates a filter for the given target contract addresses.
// Addresses are lowercased; feed matching is case-sensitive.
func NewFilter(targetContracts []string, receipts ReceiptSource) *Filter {
	targets := make(map[string]struct{}, len(targetContracts))
	for _, addr := range targetContracts {
		targets[strings.ToLower(addr)] = struct{}{}
	}
	return &Filter{targets: targets, receipts: receipts}
}

// Relevant reports whether the record should be turned into a trade.
// A record with no transfers is never relevant; it signals a cancelled or
// no-op interaction. A failed receipt lookup returns a
// RelevanceLookupError scoped to the record's hash.
func (f *Filter) Relevant(ctx context.Context, rec *domain.TransactionRecord) (bool, error) {
	if len(rec.Transfers) == 0 {
		return false, nil
	}

	if rec.InitiatedByWallet {
		_, ok := f.targets[rec.DestinationContract]
		return ok, nil
	}

	if f.receipts == nil {
		return false, &RelevanceLookupError{
			Hash: rec.Hash,
			Err:  errors.New("no receipt source configured"),
		}
	}

	emitters, err := f.receipts.LogEmitters(ctx, rec.Hash)
	if err != nil {
		return false, &RelevanceLookupError{Hash: rec.Hash, Err: err}
	}

	for _, addr := range emitters {
		if _, ok := f.targets[addr]; ok {
			return true, nil
		}
	}
	return false, nil
}
