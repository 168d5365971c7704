// Package storage defines the persistence boundary for wallet balances.
package storage

import (
	"context"
	"errors"

	"github.com/holiman/uint256"

	"github.com/halcyonlabs/actionkit/internal/wallet"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// BalanceStore persists native balances keyed by address and network.
// A missing row reads as a zero balance; wallets exist before they are
// funded.
type BalanceStore interface {
	Balance(ctx context.Context, address string, network wallet.Network) (*uint256.Int, error)
	SetBalance(ctx context.Context, address string, network wallet.Network, amount *uint256.Int) error
}
