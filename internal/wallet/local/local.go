// Package local implements a deterministic wallet for development and tests:
// a fixed address and network, with balances read through a BalanceStore.
package local

import (
	"context"
	"fmt"
	"strings"

	"github.com/holiman/uint256"

	"github.com/halcyonlabs/actionkit/internal/storage"
	"github.com/halcyonlabs/actionkit/internal/wallet"
)

// Config describes a local wallet.
type Config struct {
	Name    string
	Address string
	Network wallet.Network
	// Balances is optional; without a store every balance reads as zero.
	Balances storage.BalanceStore
}

// Wallet is a local wallet.Context implementation.
type Wallet struct {
	name     string
	address  string
	network  wallet.Network
	balances storage.BalanceStore
}

// New creates a local wallet from cfg.
func New(cfg Config) (*Wallet, error) {
	if strings.TrimSpace(cfg.Address) == "" {
		return nil, fmt.Errorf("wallet address is required")
	}
	if cfg.Network.ProtocolFamily == "" || cfg.Network.NetworkID == "" {
		return nil, fmt.Errorf("wallet network is required")
	}
	name := cfg.Name
	if name == "" {
		name = "local"
	}
	return &Wallet{
		name:     name,
		address:  cfg.Address,
		network:  cfg.Network,
		balances: cfg.Balances,
	}, nil
}

// Name identifies the wallet implementation.
func (w *Wallet) Name() string {
	return w.name
}

// Address returns the wallet's account address.
func (w *Wallet) Address() string {
	return w.address
}

// Network returns the network the wallet is connected to.
func (w *Wallet) Network() wallet.Network {
	return w.network
}

// Balance reads the wallet's native balance from the balance store. It is a
// zero balance when no store is configured.
func (w *Wallet) Balance(ctx context.Context) (*uint256.Int, error) {
	if w.balances == nil {
		return uint256.NewInt(0), nil
	}
	balance, err := w.balances.Balance(ctx, w.address, w.network)
	if err != nil {
		return nil, fmt.Errorf("read balance for %s: %w", w.address, err)
	}
	return balance, nil
}
