package reconcile

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kimpers/tokentax-scripts/internal/ledger"
)

// Default trade labels.
const (
	DefaultTradeType = "Trade"
	DefaultExchange  = "ZeroEx"
)

// Runner sequences the per-wallet batch: fetch the three feeds, aggregate,
// then filter, flatten and emit one ledger row per relevant transaction.
// One bad transaction never aborts the batch; its hash is collected for
// operator follow-up instead.
type Runner struct {
	feeds      FeedSource
	filter     *Filter
	ledger     ledger.Writer
	logger     *zap.Logger
	tradeType  string
	exchange   string
	onlyDirect bool
}

// RunnerOptions contains configuration for creating a Runner.
type RunnerOptions struct {
	Feeds           FeedSource
	Receipts        ReceiptSource
	Ledger          ledger.Writer
	Logger          *zap.Logger
	TargetContracts []string

	// TradeType labels every emitted row; defaults to "Trade".
	TradeType string
	// Exchange labels every emitted row; defaults to "ZeroEx".
	Exchange string
	// OnlyDirect skips transactions with no known destination contract,
	// keeping only trades sent directly from the wallet.
	OnlyDirect bool
}

// NewRunner creates a new wallet batch runner.
func NewRunner(opts RunnerOptions) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tradeType := opts.TradeType
	if tradeType == "" {
		tradeType = DefaultTradeType
	}
	exchange := opts.Exchange
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &Runner{
		feeds:      opts.Feeds,
		filter:     NewFilter(opts.TargetContracts, opts.Receipts),
		ledger:     opts.Ledger,
		logger:     logger,
		tradeType:  tradeType,
		exchange:   exchange,
		onlyDirect: opts.OnlyDirect,
	}
}

// WalletSummary is the operator report for one wallet run.
type WalletSummary struct {
	Wallet string
	Trades int

	// FailedHashes are transactions that errored during processing,
	// commonly upstream rate limits. Candidates for a manual rerun.
	FailedHashes []string

	// IndirectHashes produced a trade but were not initiated by the
	// wallet (limit-order fills, relayed meta-transactions). They cannot
	// be uniquely attributed from the wallet's own transaction list and
	// need manual reconciliation.
	IndirectHashes []string
}

// Run processes wallets sequentially against the shared ledger. A bulk
// feed-fetch failure is fatal and aborts the batch; summaries for wallets
// already processed are still returned.
func (r *Runner) Run(ctx context.Context, wallets []string) ([]*WalletSummary, error) {
	summaries := make([]*WalletSummary, 0, len(wallets))
	for _, wallet := range wallets {
		summary, err := r.ProcessWallet(ctx, wallet)
		if err != nil {
			return summaries, fmt.Errorf("wallet %s: %w", wallet, err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// ProcessWallet reconstructs and emits the trade history of one wallet.
// Feed fetch errors abort the run; per-transaction errors are recorded in
// the summary and processing continues.
func (r *Runner) ProcessWallet(ctx context.Context, wallet string) (*WalletSummary, error) {
	wallet = strings.ToLower(wallet)
	logger := r.logger.With(zap.String("wallet", wallet))
	logger.Info("processing wallet")

	txs, err := r.feeds.NormalTransactions(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("fetch outbound transactions: %w", err)
	}
	tokenTransfers, err := r.feeds.TokenTransfers(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("fetch token transfers: %w", err)
	}
	internalTransfers, err := r.feeds.InternalTransfers(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("fetch internal transfers: %w", err)
	}

	index, err := BuildTransactionIndex(wallet, txs, tokenTransfers, internalTransfers)
	if err != nil {
		return nil, fmt.Errorf("aggregate transfers: %w", err)
	}

	summary := &WalletSummary{Wallet: wallet}

	for _, hash := range index.Hashes {
		rec := index.Records[hash]

		if r.onlyDirect && rec.DestinationContract == "" {
			continue
		}

		relevant, err := r.filter.Relevant(ctx, rec)
		if err != nil {
			summary.FailedHashes = append(summary.FailedHashes, hash)
			logger.Warn("relevance check failed", zap.String("hash", hash), zap.Error(err))
			continue
		}
		if !relevant {
			continue
		}

		deposit, withdrawal, err := Flatten(rec.Transfers)
		if err != nil {
			summary.FailedHashes = append(summary.FailedHashes, hash)
			logger.Warn("flatten failed", zap.String("hash", hash), zap.Error(err))
			continue
		}

		trade := BuildTradeRecord(r.tradeType, r.exchange, rec, deposit, withdrawal)

		if !rec.InitiatedByWallet {
			summary.IndirectHashes = append(summary.IndirectHashes, hash)
		}

		if err := r.ledger.Append(ctx, trade); err != nil {
			summary.FailedHashes = append(summary.FailedHashes, hash)
			logger.Warn("write trade", zap.String("hash", hash), zap.Error(err))
			continue
		}
		summary.Trades++
	}

	logger.Info("wallet processed",
		zap.Int("trades", summary.Trades),
		zap.Int("failed", len(summary.FailedHashes)),
		zap.Int("indirect", len(summary.IndirectHashes)),
	)
	return summary, nil
}
