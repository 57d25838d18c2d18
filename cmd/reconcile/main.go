package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kimpers/tokentax-scripts/internal/chain"
	"github.com/kimpers/tokentax-scripts/internal/config"
	"github.com/kimpers/tokentax-scripts/internal/etherscan"
	"github.com/kimpers/tokentax-scripts/internal/ledger"
	pgledger "github.com/kimpers/tokentax-scripts/internal/ledger/postgres"
	"github.com/kimpers/tokentax-scripts/internal/reconcile"
)

func main() {
	configPath := flag.String("config", "reconcile.yaml", "Path to configuration file")
	csvPath := flag.String("output", "", "Override CSV ledger path")
	postgresDSN := flag.String("postgres-dsn", "", "Override PostgreSQL mirror DSN")
	onlyDirect := flag.Bool("only-direct", false, "Only process transactions sent directly from the wallet")
	flag.Parse()

	// Optional .env for API keys; absence is fine.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *csvPath != "" {
		cfg.Output.CSVPath = *csvPath
	}
	if *postgresDSN != "" {
		cfg.Output.PostgresDSN = *postgresDSN
	}
	if *onlyDirect {
		cfg.OnlyDirect = true
	}

	ctx := context.Background()

	feeds := etherscan.NewClient(cfg.Etherscan.BaseURL, cfg.Etherscan.APIKey)

	var receipts reconcile.ReceiptSource
	if cfg.RPCURL != "" {
		receiptClient, err := chain.NewReceiptClient(ctx, cfg.RPCURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error connecting to RPC endpoint: %v\n", err)
			os.Exit(1)
		}
		defer receiptClient.Close()
		receipts = receiptClient
	}

	csvWriter, err := ledger.NewCSVWriter(cfg.Output.CSVPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file: %v\n", err)
		os.Exit(1)
	}

	sink := ledger.Writer(csvWriter)
	if cfg.Output.PostgresDSN != "" {
		pool, err := pgledger.NewPool(ctx, cfg.Output.PostgresDSN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error connecting to postgres: %v\n", err)
			os.Exit(1)
		}
		if err := pgledger.RunMigrations(ctx, pool); err != nil {
			fmt.Fprintf(os.Stderr, "Error applying migrations: %v\n", err)
			os.Exit(1)
		}
		sink = ledger.NewMulti(csvWriter, pgledger.NewLedger(pool))
	}

	runner := reconcile.NewRunner(reconcile.RunnerOptions{
		Feeds:           feeds,
		Receipts:        receipts,
		Ledger:          sink,
		Logger:          logger,
		TargetContracts: cfg.TargetContracts,
		TradeType:       cfg.Trade.Type,
		Exchange:        cfg.Trade.Exchange,
		OnlyDirect:      cfg.OnlyDirect,
	})

	summaries, runErr := runner.Run(ctx, cfg.Wallets)

	if err := sink.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing ledger: %v\n", err)
	}

	printSummaries(summaries)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		fmt.Fprintln(os.Stderr, "Fix the feed failure and rerun; the ledger is rewritten from scratch each run.")
		os.Exit(1)
	}

	fmt.Printf("Ledger written to %s\n", cfg.Output.CSVPath)
}

// printSummaries emits the operator follow-up report: failed hashes need a
// rerun (often upstream rate limiting), indirect hashes need manual
// deduplication in the tax tool.
func printSummaries(summaries []*reconcile.WalletSummary) {
	for _, s := range summaries {
		fmt.Printf("-- %s --\n", s.Wallet)
		fmt.Printf("Trades written: %d\n", s.Trades)

		fmt.Println("Failed txs (sometimes Etherscan rate-limits and these need another run):")
		for _, hash := range s.FailedHashes {
			fmt.Printf("  %s\n", hash)
		}
		if len(s.FailedHashes) == 0 {
			fmt.Println("  (none)")
		}

		fmt.Println("Limit order fills / meta-transactions (delete each hash individually from TokenTax):")
		for _, hash := range s.IndirectHashes {
			fmt.Printf("  %s\n", hash)
		}
		if len(s.IndirectHashes) == 0 {
			fmt.Println("  (none)")
		}
	}
}
