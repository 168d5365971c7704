package actions

import (
	"fmt"
	"sync"
)

// registration pairs a spec with the handler it dispatches to.
type registration struct {
	spec    Spec
	handler Handler
}

// Set is the ordered action registration list for one provider type.
// It is populated at package load time and read-only afterwards; every
// provider instance of that type shares it.
type Set struct {
	typeKey string

	mu    sync.Mutex
	regs  []registration
	names map[string]struct{}
}

// table holds the process-wide registration sets keyed by provider type.
var table = struct {
	mu   sync.Mutex
	sets map[string]*Set
}{sets: make(map[string]*Set)}

// NewSet creates the registration set for a provider type. Claiming the same
// type key twice is a registration error.
func NewSet(typeKey string) (*Set, error) {
	if typeKey == "" {
		return nil, fmt.Errorf("%w: provider type key is required", ErrInvalidSpec)
	}
	table.mu.Lock()
	defer table.mu.Unlock()
	if _, ok := table.sets[typeKey]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateProviderType, typeKey)
	}
	set := &Set{typeKey: typeKey, names: make(map[string]struct{})}
	table.sets[typeKey] = set
	return set, nil
}

// MustNewSet creates the registration set for a provider type and panics on
// conflict. Intended for package-level var declarations.
func MustNewSet(typeKey string) *Set {
	set, err := NewSet(typeKey)
	if err != nil {
		panic(err)
	}
	return set
}

// Add registers an action on the provider type. Duplicate names and
// malformed specs fail here, at load time, not when the provider is used.
func (s *Set) Add(spec Spec, handler Handler) error {
	if err := spec.validate(); err != nil {
		return err
	}
	if handler == nil {
		return fmt.Errorf("%w: action %q has no handler", ErrInvalidSpec, spec.Name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.names[spec.Name]; ok {
		return fmt.Errorf("%w: %q on provider type %q", ErrDuplicateAction, spec.Name, s.typeKey)
	}
	s.names[spec.Name] = struct{}{}
	s.regs = append(s.regs, registration{spec: spec, handler: handler})
	return nil
}

// MustAdd registers an action and panics on error. Intended for package
// init blocks, where a duplicate name is a programming error.
func (s *Set) MustAdd(spec Spec, handler Handler) {
	if err := s.Add(spec, handler); err != nil {
		panic(err)
	}
}

// TypeKey returns the provider type key the set was claimed under.
func (s *Set) TypeKey() string {
	return s.typeKey
}

// Len reports how many actions are registered on the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.regs)
}

// registrations returns a snapshot of the set in registration order.
func (s *Set) registrations() []registration {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]registration, len(s.regs))
	copy(out, s.regs)
	return out
}
