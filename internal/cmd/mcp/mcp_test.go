package mcp

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport stdio, got %q", cfg.Transport)
	}
	if cfg.HTTPAddr != "localhost:8081" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.NetworkID != "base-sepolia" {
		t.Fatalf("expected default network base-sepolia, got %q", cfg.NetworkID)
	}
	if cfg.ChainID != "84532" {
		t.Fatalf("expected default chain 84532, got %q", cfg.ChainID)
	}
	if cfg.ProtocolFamily != "evm" {
		t.Fatalf("expected default family evm, got %q", cfg.ProtocolFamily)
	}
	if cfg.WalletDB != "" {
		t.Fatalf("expected no default wallet db, got %q", cfg.WalletDB)
	}
}

func TestParseConfigEnvOverrides(t *testing.T) {
	t.Setenv("ACTIONKIT_MCP_TRANSPORT", "http")
	t.Setenv("ACTIONKIT_NETWORK_ID", "base-mainnet")
	t.Setenv("ACTIONKIT_CHAIN_ID", "8453")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected env transport http, got %q", cfg.Transport)
	}
	if cfg.NetworkID != "base-mainnet" || cfg.ChainID != "8453" {
		t.Fatalf("expected env network, got %q/%q", cfg.NetworkID, cfg.ChainID)
	}
}

func TestParseConfigFlagsBeatEnv(t *testing.T) {
	t.Setenv("ACTIONKIT_WALLET_ADDRESS", "0xENV")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-wallet-address", "0xFLAG", "-wallet-db", "/tmp/wallet.db"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.WalletAddress != "0xFLAG" {
		t.Fatalf("expected flag to win, got %q", cfg.WalletAddress)
	}
	if cfg.WalletDB != "/tmp/wallet.db" {
		t.Fatalf("expected wallet db flag, got %q", cfg.WalletDB)
	}
}

func TestRootProviderAggregatesBuiltins(t *testing.T) {
	provider, err := rootProvider()
	if err != nil {
		t.Fatalf("root provider: %v", err)
	}
	descriptors, err := provider.Actions(nil)
	if err != nil {
		t.Fatalf("actions: %v", err)
	}
	want := []string{"greet", "get_wallet_info", "get_balance"}
	if len(descriptors) != len(want) {
		t.Fatalf("expected %d actions, got %d", len(want), len(descriptors))
	}
	for i, descriptor := range descriptors {
		if descriptor.Name != want[i] {
			t.Fatalf("action %d: expected %q, got %q", i, want[i], descriptor.Name)
		}
	}
}
