// Package walletinfo exposes wallet-bound actions reporting the invocation
// wallet's identity and balance.
package walletinfo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/halcyonlabs/actionkit/internal/actions"
	"github.com/halcyonlabs/actionkit/internal/schema"
	"github.com/halcyonlabs/actionkit/internal/wallet"
)

var set = actions.MustNewSet("wallet_info")

func init() {
	set.MustAdd(actions.Spec{
		Name:        "get_wallet_info",
		Description: "Returns the wallet's address, network, and native balance",
		Schema:      schema.MustNew(schema.Object(nil, nil)),
	}, actions.WalletBound(getWalletInfo))
	set.MustAdd(actions.Spec{
		Name:        "get_balance",
		Description: "Returns the wallet's native balance in base units",
		Schema:      schema.MustNew(schema.Object(nil, nil)),
	}, actions.WalletBound(getBalance))
}

// Info is the structured get_wallet_info output.
type Info struct {
	Address string         `json:"address"`
	Network wallet.Network `json:"network"`
	Balance string         `json:"balance"`
	Name    string         `json:"name"`
}

func getWalletInfo(ctx context.Context, w wallet.Context, _ struct{}) (string, error) {
	balance, err := w.Balance(ctx)
	if err != nil {
		return "", fmt.Errorf("get balance: %w", err)
	}
	info := Info{
		Address: w.Address(),
		Network: w.Network(),
		Balance: balance.Dec(),
		Name:    w.Name(),
	}
	encoded, err := json.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("encode wallet info: %w", err)
	}
	return string(encoded), nil
}

func getBalance(ctx context.Context, w wallet.Context, _ struct{}) (string, error) {
	balance, err := w.Balance(ctx)
	if err != nil {
		return "", fmt.Errorf("get balance: %w", err)
	}
	return balance.Dec(), nil
}

// Option configures the walletinfo provider.
type Option func(*options)

type options struct {
	families []string
}

// WithFamilies scopes the provider to the given protocol families. Without
// it the provider supports every network.
func WithFamilies(families ...string) Option {
	return func(o *options) {
		o.families = append(o.families, families...)
	}
}

// New constructs the walletinfo provider.
func New(opts ...Option) (*actions.Provider, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	providerOpts := []actions.Option{}
	if len(o.families) > 0 {
		families := make(map[string]struct{}, len(o.families))
		for _, family := range o.families {
			families[family] = struct{}{}
		}
		providerOpts = append(providerOpts, actions.WithNetworkSupport(func(n wallet.Network) bool {
			_, ok := families[n.ProtocolFamily]
			return ok
		}))
	}
	return actions.NewProvider("wallet_info", set, providerOpts...)
}
