package etherscan

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/kimpers/tokentax-scripts/internal/domain"
)

// apiResponse is the Etherscan account-API envelope. Result holds a JSON
// array on success and a plain string on errors, so it stays raw until the
// status is known.
type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// normalTxRow is one raw row of the txlist action. Etherscan serializes
// every numeric field as a decimal string.
type normalTxRow struct {
	Hash      string `json:"hash"`
	TimeStamp string `json:"timeStamp"`
	To        string `json:"to"`
	Value     string `json:"value"`
	IsError   string `json:"isError"`
}

func (r normalTxRow) toDomain() (domain.NormalTransaction, error) {
	ts, err := strconv.ParseInt(r.TimeStamp, 10, 64)
	if err != nil {
		return domain.NormalTransaction{}, fmt.Errorf("parse timestamp %q: %w", r.TimeStamp, err)
	}
	value, ok := new(big.Int).SetString(r.Value, 10)
	if !ok {
		return domain.NormalTransaction{}, fmt.Errorf("parse value %q", r.Value)
	}
	return domain.NormalTransaction{
		Hash:      strings.ToLower(r.Hash),
		Timestamp: ts,
		To:        strings.ToLower(r.To),
		Value:     value,
		Failed:    r.IsError != "0",
	}, nil
}

// tokenTxRow is one raw row of the tokentx action.
type tokenTxRow struct {
	Hash         string `json:"hash"`
	TimeStamp    string `json:"timeStamp"`
	From         string `json:"from"`
	To           string `json:"to"`
	Value        string `json:"value"`
	TokenSymbol  string `json:"tokenSymbol"`
	TokenDecimal string `json:"tokenDecimal"`
}

func (r tokenTxRow) toDomain() (domain.TokenTransferEvent, error) {
	ts, err := strconv.ParseInt(r.TimeStamp, 10, 64)
	if err != nil {
		return domain.TokenTransferEvent{}, fmt.Errorf("parse timestamp %q: %w", r.TimeStamp, err)
	}
	value, ok := new(big.Int).SetString(r.Value, 10)
	if !ok {
		return domain.TokenTransferEvent{}, fmt.Errorf("parse value %q", r.Value)
	}
	decimals, err := strconv.ParseInt(r.TokenDecimal, 10, 32)
	if err != nil {
		return domain.TokenTransferEvent{}, fmt.Errorf("parse token decimals %q: %w", r.TokenDecimal, err)
	}
	return domain.TokenTransferEvent{
		Hash:      strings.ToLower(r.Hash),
		Timestamp: ts,
		From:      strings.ToLower(r.From),
		To:        strings.ToLower(r.To),
		Symbol:    r.TokenSymbol,
		Value:     value,
		Decimals:  int32(decimals),
	}, nil
}

// internalTxRow is one raw row of the txlistinternal action.
type internalTxRow struct {
	Hash      string `json:"hash"`
	TimeStamp string `json:"timeStamp"`
	Value     string `json:"value"`
}

func (r internalTxRow) toDomain() (domain.InternalTransfer, error) {
	ts, err := strconv.ParseInt(r.TimeStamp, 10, 64)
	if err != nil {
		return domain.InternalTransfer{}, fmt.Errorf("parse timestamp %q: %w", r.TimeStamp, err)
	}
	value, ok := new(big.Int).SetString(r.Value, 10)
	if !ok {
		return domain.InternalTransfer{}, fmt.Errorf("parse value %q", r.Value)
	}
	return domain.InternalTransfer{
		Hash:      strings.ToLower(r.Hash),
		Timestamp: ts,
		Value:     value,
	}, nil
}
