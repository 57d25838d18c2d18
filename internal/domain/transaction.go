package domain

// TransactionRecord is the unified per-transaction view assembled from the
// three wallet feeds. Records are built incrementally during aggregation:
// whichever feed first names a hash creates the record, later feeds only
// append transfers and never overwrite InitiatedByWallet or
// DestinationContract.
type TransactionRecord struct {
	Hash                string // transaction hash, unique key
	Timestamp           int64  // unix seconds
	InitiatedByWallet   bool
	DestinationContract string // lowercase address, empty when unknown
	Transfers           []Transfer
}

// NewTransactionRecord creates a record for a transaction first seen via the
// wallet's own outbound transaction list.
func NewTransactionRecord(hash string, timestamp int64, destination string) *TransactionRecord {
	return &TransactionRecord{
		Hash:                hash,
		Timestamp:           timestamp,
		InitiatedByWallet:   true,
		DestinationContract: destination,
	}
}

// NewObservedTransactionRecord creates a record for a transaction first seen
// via a transfer event rather than the wallet's outbound list. The
// destination contract is unknown for such records.
func NewObservedTransactionRecord(hash string, timestamp int64) *TransactionRecord {
	return &TransactionRecord{
		Hash:      hash,
		Timestamp: timestamp,
	}
}

// AppendTransfer adds a transfer to the record. The transfer list is
// append-only during aggregation.
func (r *TransactionRecord) AppendTransfer(t Transfer) {
	r.Transfers = append(r.Transfers, t)
}
