// Package actions implements the action registration and dispatch core:
// per-provider-type registration sets, provider composition, and the
// descriptors a host runtime invokes.
//
// Providers declare their actions once, at package load time, against a Set
// keyed by provider type. Instances constructed later share that set; calling
// Provider.Actions binds the registered handlers to a wallet context and
// returns ready-to-invoke descriptors.
package actions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/halcyonlabs/actionkit/internal/schema"
	"github.com/halcyonlabs/actionkit/internal/wallet"
)

// Kind discriminates wallet-bound handlers from unbound ones. It is fixed
// when the handler is wrapped, not inferred at invocation time.
type Kind string

const (
	// KindUnbound marks handlers that run without wallet access.
	KindUnbound Kind = "unbound"
	// KindWalletBound marks handlers that receive the invocation wallet.
	KindWalletBound Kind = "wallet_bound"
)

// Spec declares one action: its unique name, the description shown to the
// host runtime, and the input contract enforced before every invocation.
type Spec struct {
	Name        string
	Description string
	Schema      *schema.Contract
}

func (s Spec) validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidSpec)
	}
	if s.Schema == nil {
		return fmt.Errorf("%w: action %q has no schema", ErrInvalidSpec, s.Name)
	}
	return nil
}

// Handler executes an action invocation whose input already passed schema
// validation.
type Handler interface {
	// Kind reports whether the handler needs the invocation wallet.
	Kind() Kind
	// Handle decodes input and runs the action. For unbound handlers w is
	// ignored and may be nil.
	Handle(ctx context.Context, w wallet.Context, input json.RawMessage) (string, error)
}

type unboundHandler[T any] struct {
	fn func(ctx context.Context, input T) (string, error)
}

// Unbound wraps fn as a handler that runs without wallet access.
func Unbound[T any](fn func(ctx context.Context, input T) (string, error)) Handler {
	return unboundHandler[T]{fn: fn}
}

func (h unboundHandler[T]) Kind() Kind { return KindUnbound }

func (h unboundHandler[T]) Handle(ctx context.Context, _ wallet.Context, input json.RawMessage) (string, error) {
	value, err := decodeInput[T](input)
	if err != nil {
		return "", err
	}
	return h.fn(ctx, value)
}

type walletBoundHandler[T any] struct {
	fn func(ctx context.Context, w wallet.Context, input T) (string, error)
}

// WalletBound wraps fn as a handler that receives the wallet context the
// caller passed to Provider.Actions.
func WalletBound[T any](fn func(ctx context.Context, w wallet.Context, input T) (string, error)) Handler {
	return walletBoundHandler[T]{fn: fn}
}

func (h walletBoundHandler[T]) Kind() Kind { return KindWalletBound }

func (h walletBoundHandler[T]) Handle(ctx context.Context, w wallet.Context, input json.RawMessage) (string, error) {
	if w == nil {
		return "", fmt.Errorf("wallet-bound action invoked without a wallet context")
	}
	value, err := decodeInput[T](input)
	if err != nil {
		return "", err
	}
	return h.fn(ctx, w, value)
}

// decodeInput unmarshals validated raw input into the handler's input type.
// Empty input decodes to the zero value, matching the empty-object contract
// used by parameterless actions.
func decodeInput[T any](input json.RawMessage) (T, error) {
	var value T
	if len(input) == 0 {
		return value, nil
	}
	if err := json.Unmarshal(input, &value); err != nil {
		return value, fmt.Errorf("decode input: %w", err)
	}
	return value, nil
}
