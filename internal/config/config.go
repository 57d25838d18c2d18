// Package config loads the batch configuration: wallet list, target
// contract list, provider endpoints and output sinks. Loaded once at
// startup and passed in explicitly; there is no process-wide state.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DefaultTargetContracts are the 0x protocol contracts whose involvement
// marks a transaction as a trade.
var DefaultTargetContracts = []string{
	"0xdef1c0ded9bec7f1a1670819833240f027b25eff", // 0x V4
	"0x61935cbdd02287b511119ddb11aeb42f1593b7ef", // 0x V3
	"0x6958f5e95332d93d21af0d7b9ca85b8212fee0a5", // 0x V3 Forwarder
	"0x080bf510fcbf18b91105470639e9561022937712", // 0x V2
}

// Config is the batch run configuration.
type Config struct {
	Wallets         []string `mapstructure:"wallets"`
	TargetContracts []string `mapstructure:"target_contracts"`

	Etherscan struct {
		BaseURL string `mapstructure:"base_url"`
		APIKey  string `mapstructure:"api_key"`
	} `mapstructure:"etherscan"`

	// RPCURL is the JSON-RPC endpoint used for receipt lookups.
	RPCURL string `mapstructure:"rpc_url"`

	Output struct {
		CSVPath     string `mapstructure:"csv_path"`
		PostgresDSN string `mapstructure:"postgres_dsn"`
	} `mapstructure:"output"`

	Trade struct {
		Type     string `mapstructure:"type"`
		Exchange string `mapstructure:"exchange"`
	} `mapstructure:"trade"`

	// OnlyDirect keeps only transactions sent directly from the wallet.
	OnlyDirect bool `mapstructure:"only_direct"`
}

// Load reads the configuration file, applies defaults and environment
// overrides (RECONCILE_ETHERSCAN_API_KEY and friends), and normalizes
// addresses.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvPrefix("RECONCILE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("target_contracts", DefaultTargetContracts)
	v.SetDefault("etherscan.base_url", "https://api.etherscan.io/api")
	v.SetDefault("output.csv_path", "zeroex_trades.csv")
	v.SetDefault("trade.type", "Trade")
	v.SetDefault("trade.exchange", "ZeroEx")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalize lowercases all addresses; feed matching is case-sensitive.
func (c *Config) normalize() {
	for i, w := range c.Wallets {
		c.Wallets[i] = strings.ToLower(strings.TrimSpace(w))
	}
	for i, t := range c.TargetContracts {
		c.TargetContracts[i] = strings.ToLower(strings.TrimSpace(t))
	}
}

func (c *Config) validate() error {
	if len(c.Wallets) == 0 {
		return errors.New("config: at least one wallet is required")
	}
	if len(c.TargetContracts) == 0 {
		return errors.New("config: at least one target contract is required")
	}
	if c.Etherscan.APIKey == "" {
		return errors.New("config: etherscan.api_key is required (or RECONCILE_ETHERSCAN_API_KEY)")
	}
	if c.RPCURL == "" && !c.OnlyDirect {
		return errors.New("config: rpc_url is required unless only_direct is set")
	}
	return nil
}
