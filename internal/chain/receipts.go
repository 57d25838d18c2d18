// Package chain provides on-demand JSON-RPC lookups against an Ethereum
// node, used when a transaction's relevance cannot be decided from the bulk
// feeds alone.
package chain

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ReceiptClient fetches transaction receipts through go-ethereum's client.
type ReceiptClient struct {
	eth *ethclient.Client
}

// NewReceiptClient dials the given JSON-RPC endpoint.
func NewReceiptClient(ctx context.Context, rpcURL string) (*ReceiptClient, error) {
	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc endpoint: %w", err)
	}
	return &ReceiptClient{eth: eth}, nil
}

// LogEmitters returns the lowercase addresses that emitted event logs in the
// transaction's receipt, one entry per log.
func (c *ReceiptClient) LogEmitters(ctx context.Context, txHash string) ([]string, error) {
	receipt, err := c.eth.TransactionReceipt(ctx, common.HexToHash(txHash))
	if err != nil {
		return nil, fmt.Errorf("fetch receipt %s: %w", txHash, err)
	}

	emitters := make([]string, 0, len(receipt.Logs))
	for _, entry := range receipt.Logs {
		emitters = append(emitters, strings.ToLower(entry.Address.Hex()))
	}
	return emitters, nil
}

// Close releases the underlying RPC connection.
func (c *ReceiptClient) Close() {
	c.eth.Close()
}
