package actions

import (
	"context"
	"errors"
	"testing"

	"github.com/halcyonlabs/actionkit/internal/schema"
)

func emptySchema(t *testing.T) *schema.Contract {
	t.Helper()
	contract, err := schema.New(schema.Object(nil, nil))
	if err != nil {
		t.Fatalf("new contract: %v", err)
	}
	return contract
}

func noop(_ context.Context, _ struct{}) (string, error) {
	return "", nil
}

func TestNewSetRejectsDuplicateTypeKey(t *testing.T) {
	if _, err := NewSet("registrar-test-dup-type"); err != nil {
		t.Fatalf("first set: %v", err)
	}
	_, err := NewSet("registrar-test-dup-type")
	if !errors.Is(err, ErrDuplicateProviderType) {
		t.Fatalf("expected ErrDuplicateProviderType, got %v", err)
	}
}

func TestNewSetRejectsEmptyTypeKey(t *testing.T) {
	if _, err := NewSet(""); err == nil {
		t.Fatal("expected error for empty type key")
	}
}

func TestAddRejectsDuplicateName(t *testing.T) {
	set := MustNewSet("registrar-test-dup-name")
	spec := Spec{Name: "noop", Description: "noop", Schema: emptySchema(t)}
	if err := set.Add(spec, Unbound(noop)); err != nil {
		t.Fatalf("first add: %v", err)
	}
	err := set.Add(spec, Unbound(noop))
	if !errors.Is(err, ErrDuplicateAction) {
		t.Fatalf("expected ErrDuplicateAction, got %v", err)
	}
	if set.Len() != 1 {
		t.Fatalf("expected 1 registration, got %d", set.Len())
	}
}

func TestAddRejectsMalformedSpec(t *testing.T) {
	set := MustNewSet("registrar-test-malformed")
	contract := emptySchema(t)

	if err := set.Add(Spec{Description: "no name", Schema: contract}, Unbound(noop)); !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec for missing name, got %v", err)
	}
	if err := set.Add(Spec{Name: "no-schema"}, Unbound(noop)); !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec for missing schema, got %v", err)
	}
	if err := set.Add(Spec{Name: "no-handler", Schema: contract}, nil); !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec for missing handler, got %v", err)
	}
	if set.Len() != 0 {
		t.Fatalf("expected no registrations, got %d", set.Len())
	}
}

func TestMustAddPanicsOnDuplicate(t *testing.T) {
	set := MustNewSet("registrar-test-panic")
	spec := Spec{Name: "noop", Description: "noop", Schema: emptySchema(t)}
	set.MustAdd(spec, Unbound(noop))

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	set.MustAdd(spec, Unbound(noop))
}

func TestRegistrationOrderPreserved(t *testing.T) {
	set := MustNewSet("registrar-test-order")
	contract := emptySchema(t)
	names := []string{"first", "second", "third"}
	for _, name := range names {
		set.MustAdd(Spec{Name: name, Description: name, Schema: contract}, Unbound(noop))
	}

	regs := set.registrations()
	if len(regs) != len(names) {
		t.Fatalf("expected %d registrations, got %d", len(names), len(regs))
	}
	for i, reg := range regs {
		if reg.spec.Name != names[i] {
			t.Fatalf("registration %d: expected %q, got %q", i, names[i], reg.spec.Name)
		}
	}
}
