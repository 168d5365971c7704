// Package wallet defines the capability surface actions use to reach a
// caller-supplied wallet: address, network identity, and balance lookups.
// The registry never owns a wallet; one is injected per Actions call and
// discarded with the descriptors it produced.
package wallet

import (
	"context"

	"github.com/holiman/uint256"
)

// Protocol families recognised across providers.
const (
	FamilyEVM    = "evm"
	FamilySolana = "solana"
)

// Network describes the blockchain network a wallet is connected to.
// It is a read-only value; providers never mutate it.
type Network struct {
	ProtocolFamily string `json:"protocol_family"`
	NetworkID      string `json:"network_id"`
	ChainID        string `json:"chain_id,omitempty"`
}

// Context is the capability handle injected into wallet-bound actions.
//
// Implementations must be safe for concurrent use: the host runtime may
// invoke several descriptors bound to the same Context at once.
type Context interface {
	// Name identifies the wallet implementation (e.g. "local").
	Name() string
	// Address returns the wallet's account address.
	Address() string
	// Network returns the network the wallet is connected to.
	Network() Network
	// Balance returns the wallet's native balance in base units.
	Balance(ctx context.Context) (*uint256.Int, error)
}
