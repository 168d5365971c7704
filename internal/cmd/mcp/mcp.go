// Package mcp parses MCP command flags and wires the wallet, providers, and
// transport for the actionkit MCP server.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/halcyonlabs/actionkit/internal/actions"
	mcpserver "github.com/halcyonlabs/actionkit/internal/mcp"
	"github.com/halcyonlabs/actionkit/internal/platform/config"
	"github.com/halcyonlabs/actionkit/internal/platform/otel"
	"github.com/halcyonlabs/actionkit/internal/providers/greeter"
	"github.com/halcyonlabs/actionkit/internal/providers/walletinfo"
	"github.com/halcyonlabs/actionkit/internal/storage"
	"github.com/halcyonlabs/actionkit/internal/storage/sqlite"
	"github.com/halcyonlabs/actionkit/internal/wallet"
	"github.com/halcyonlabs/actionkit/internal/wallet/local"
)

// Config holds MCP command configuration.
type Config struct {
	Transport      string `env:"ACTIONKIT_MCP_TRANSPORT"  envDefault:"stdio"`
	HTTPAddr       string `env:"ACTIONKIT_MCP_HTTP_ADDR"  envDefault:"localhost:8081"`
	WalletDB       string `env:"ACTIONKIT_WALLET_DB"`
	WalletName     string `env:"ACTIONKIT_WALLET_NAME"    envDefault:"local"`
	WalletAddress  string `env:"ACTIONKIT_WALLET_ADDRESS" envDefault:"0x0000000000000000000000000000000000000000"`
	ProtocolFamily string `env:"ACTIONKIT_PROTOCOL_FAMILY" envDefault:"evm"`
	NetworkID      string `env:"ACTIONKIT_NETWORK_ID"     envDefault:"base-sepolia"`
	ChainID        string `env:"ACTIONKIT_CHAIN_ID"       envDefault:"84532"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.WalletDB, "wallet-db", cfg.WalletDB, "SQLite path for wallet balances (empty for zero balances)")
	fs.StringVar(&cfg.WalletName, "wallet-name", cfg.WalletName, "wallet display name")
	fs.StringVar(&cfg.WalletAddress, "wallet-address", cfg.WalletAddress, "wallet account address")
	fs.StringVar(&cfg.ProtocolFamily, "protocol-family", cfg.ProtocolFamily, "active network protocol family")
	fs.StringVar(&cfg.NetworkID, "network-id", cfg.NetworkID, "active network identifier")
	fs.StringVar(&cfg.ChainID, "chain-id", cfg.ChainID, "active network chain id")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "mcp")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	network := wallet.Network{
		ProtocolFamily: cfg.ProtocolFamily,
		NetworkID:      cfg.NetworkID,
		ChainID:        cfg.ChainID,
	}

	var balances storage.BalanceStore
	if cfg.WalletDB != "" {
		store, err := sqlite.Open(cfg.WalletDB)
		if err != nil {
			return fmt.Errorf("open wallet db: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("close wallet db: %v", err)
			}
		}()
		balances = store
	}

	walletCtx, err := local.New(local.Config{
		Name:     cfg.WalletName,
		Address:  cfg.WalletAddress,
		Network:  network,
		Balances: balances,
	})
	if err != nil {
		return fmt.Errorf("create wallet: %w", err)
	}

	provider, err := rootProvider()
	if err != nil {
		return err
	}

	return mcpserver.Run(ctx, mcpserver.Config{
		Provider:  provider,
		Wallet:    walletCtx,
		Network:   network,
		Transport: mcpserver.TransportKind(cfg.Transport),
		HTTPAddr:  cfg.HTTPAddr,
	})
}

// rootProvider assembles the built-in providers under one composite root.
func rootProvider() (*actions.Provider, error) {
	greeterProvider, err := greeter.New()
	if err != nil {
		return nil, fmt.Errorf("create greeter provider: %w", err)
	}
	walletProvider, err := walletinfo.New()
	if err != nil {
		return nil, fmt.Errorf("create walletinfo provider: %w", err)
	}
	provider, err := actions.NewProvider("actionkit", nil,
		actions.WithSubProviders(greeterProvider, walletProvider),
	)
	if err != nil {
		return nil, fmt.Errorf("create root provider: %w", err)
	}
	return provider, nil
}
