package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"

	"github.com/halcyonlabs/actionkit/internal/wallet"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "wallet.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func baseSepolia() wallet.Network {
	return wallet.Network{ProtocolFamily: wallet.FamilyEVM, NetworkID: "base-sepolia", ChainID: "84532"}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestBalanceMissingRowIsZero(t *testing.T) {
	store := openTestStore(t)
	balance, err := store.Balance(context.Background(), "0xABC", baseSepolia())
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if !balance.IsZero() {
		t.Fatalf("expected zero balance, got %s", balance.Dec())
	}
}

func TestSetBalanceRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SetBalance(ctx, "0xABC", baseSepolia(), uint256.NewInt(1500)); err != nil {
		t.Fatalf("set balance: %v", err)
	}
	balance, err := store.Balance(ctx, "0xABC", baseSepolia())
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance.Dec() != "1500" {
		t.Fatalf("expected 1500, got %s", balance.Dec())
	}
}

func TestSetBalanceUpserts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SetBalance(ctx, "0xABC", baseSepolia(), uint256.NewInt(1)); err != nil {
		t.Fatalf("first set: %v", err)
	}
	if err := store.SetBalance(ctx, "0xABC", baseSepolia(), uint256.NewInt(2)); err != nil {
		t.Fatalf("second set: %v", err)
	}
	balance, err := store.Balance(ctx, "0xABC", baseSepolia())
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance.Dec() != "2" {
		t.Fatalf("expected 2, got %s", balance.Dec())
	}
}

func TestBalancesKeyedByNetwork(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	mainnet := wallet.Network{ProtocolFamily: wallet.FamilyEVM, NetworkID: "base-mainnet", ChainID: "8453"}

	if err := store.SetBalance(ctx, "0xABC", baseSepolia(), uint256.NewInt(10)); err != nil {
		t.Fatalf("set sepolia: %v", err)
	}
	if err := store.SetBalance(ctx, "0xABC", mainnet, uint256.NewInt(20)); err != nil {
		t.Fatalf("set mainnet: %v", err)
	}

	sepoliaBalance, err := store.Balance(ctx, "0xABC", baseSepolia())
	if err != nil {
		t.Fatalf("balance sepolia: %v", err)
	}
	mainnetBalance, err := store.Balance(ctx, "0xABC", mainnet)
	if err != nil {
		t.Fatalf("balance mainnet: %v", err)
	}
	if sepoliaBalance.Dec() != "10" || mainnetBalance.Dec() != "20" {
		t.Fatalf("expected 10/20, got %s/%s", sepoliaBalance.Dec(), mainnetBalance.Dec())
	}
}

func TestSetBalanceRequiresAmount(t *testing.T) {
	store := openTestStore(t)
	if err := store.SetBalance(context.Background(), "0xABC", baseSepolia(), nil); err == nil {
		t.Fatal("expected error for nil amount")
	}
}

func TestLargeBalanceRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	large, err := uint256.FromDecimal("115792089237316195423570985008687907853269984665640564039457584007913129639935")
	if err != nil {
		t.Fatalf("parse max uint256: %v", err)
	}
	if err := store.SetBalance(ctx, "0xABC", baseSepolia(), large); err != nil {
		t.Fatalf("set balance: %v", err)
	}
	balance, err := store.Balance(ctx, "0xABC", baseSepolia())
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance.Dec() != large.Dec() {
		t.Fatalf("expected %s, got %s", large.Dec(), balance.Dec())
	}
}
