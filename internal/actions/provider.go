package actions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/halcyonlabs/actionkit/internal/wallet"
)

// Provider is a named, immutable unit owning registered actions and zero or
// more sub-providers. The sub-provider sequence is fixed at construction;
// flattening it is a pure function, so a provider tree must not contain a
// provider transitively within itself.
type Provider struct {
	name     string
	set      *Set
	subs     []*Provider
	supports func(wallet.Network) bool
}

// Option configures a Provider at construction time.
type Option func(*Provider)

// WithSubProviders attaches sub-providers in the given order. Their actions
// are listed after the owning provider's own actions.
func WithSubProviders(subs ...*Provider) Option {
	return func(p *Provider) {
		p.subs = append(p.subs, subs...)
	}
}

// WithNetworkSupport sets the provider's own network predicate. Without it a
// provider supports every network.
func WithNetworkSupport(supports func(wallet.Network) bool) Option {
	return func(p *Provider) {
		p.supports = supports
	}
}

// NewProvider constructs a provider over a registration set. A nil set is
// allowed for purely composite providers that only aggregate sub-providers.
func NewProvider(name string, set *Set, opts ...Option) (*Provider, error) {
	if name == "" {
		return nil, fmt.Errorf("provider name is required")
	}
	p := &Provider{name: name, set: set}
	for _, opt := range opts {
		opt(p)
	}
	for i, sub := range p.subs {
		if sub == nil {
			return nil, fmt.Errorf("provider %q: sub-provider %d is nil", name, i)
		}
	}
	return p, nil
}

// Name returns the provider's permanent identity.
func (p *Provider) Name() string {
	return p.name
}

// SupportsNetwork reports whether the provider and all of its sub-providers
// support n. The host runtime calls this once per active network to decide
// whether to expose the provider's actions at all.
func (p *Provider) SupportsNetwork(n wallet.Network) bool {
	if p.supports != nil && !p.supports(n) {
		return false
	}
	for _, sub := range p.subs {
		if !sub.SupportsNetwork(n) {
			return false
		}
	}
	return true
}

// Actions flattens the provider tree into invocable descriptors bound to w.
// Own actions come first in registration order, then each sub-provider's,
// depth-first in construction order; the ordering is stable across calls.
// A duplicate action name anywhere in the aggregate is a configuration
// defect and fails the whole call.
func (p *Provider) Actions(w wallet.Context) ([]Descriptor, error) {
	seen := make(map[string]string)
	return p.collect(w, seen)
}

func (p *Provider) collect(w wallet.Context, seen map[string]string) ([]Descriptor, error) {
	var out []Descriptor
	for _, reg := range p.set.registrations() {
		if first, ok := seen[reg.spec.Name]; ok {
			return nil, &CollisionError{Action: reg.spec.Name, First: first, Second: p.name}
		}
		seen[reg.spec.Name] = p.name
		out = append(out, newDescriptor(reg, w))
	}
	for _, sub := range p.subs {
		descs, err := sub.collect(w, seen)
		if err != nil {
			return nil, err
		}
		out = append(out, descs...)
	}
	return out, nil
}

// Descriptor is one ready-to-invoke action, bound to the wallet context of
// the Actions call that produced it. Name, Description, and Schema are
// read-only introspection fields for the host runtime.
type Descriptor struct {
	Name        string
	Description string
	Schema      *jsonschema.Schema

	invoke func(ctx context.Context, raw json.RawMessage) (string, error)
}

func newDescriptor(reg registration, w wallet.Context) Descriptor {
	spec := reg.spec
	handler := reg.handler
	return Descriptor{
		Name:        spec.Name,
		Description: spec.Description,
		Schema:      spec.Schema.JSON(),
		invoke: func(ctx context.Context, raw json.RawMessage) (string, error) {
			if err := spec.Schema.Validate(raw); err != nil {
				return "", &ValidationError{Action: spec.Name, Err: err}
			}
			return handler.Handle(ctx, w, raw)
		},
	}
}

// Invoke validates raw against the action's schema and runs the underlying
// method. Validation failures never reach the method; method failures
// propagate unchanged, with no retry.
func (d Descriptor) Invoke(ctx context.Context, raw json.RawMessage) (string, error) {
	return d.invoke(ctx, raw)
}
