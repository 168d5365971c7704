// Package sqlite provides SQLite-backed persistence for wallet balances.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/holiman/uint256"
	_ "modernc.org/sqlite"

	"github.com/halcyonlabs/actionkit/internal/wallet"
)

// Store provides SQLite-backed persistence for balance records.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := store.migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) migrate() error {
	_, err := s.sqlDB.Exec(`CREATE TABLE IF NOT EXISTS balances (
		address         TEXT NOT NULL,
		protocol_family TEXT NOT NULL,
		network_id      TEXT NOT NULL,
		chain_id        TEXT NOT NULL DEFAULT '',
		amount          TEXT NOT NULL,
		updated_at_ms   INTEGER NOT NULL,
		PRIMARY KEY (address, protocol_family, network_id)
	)`)
	return err
}

// Balance returns the stored balance for address on network. A missing row
// reads as zero.
func (s *Store) Balance(ctx context.Context, address string, network wallet.Network) (*uint256.Int, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT amount FROM balances WHERE address = ? AND protocol_family = ? AND network_id = ?`,
		address, network.ProtocolFamily, network.NetworkID,
	)
	var amount string
	if err := row.Scan(&amount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uint256.NewInt(0), nil
		}
		return nil, fmt.Errorf("query balance: %w", err)
	}
	value, err := uint256.FromDecimal(amount)
	if err != nil {
		return nil, fmt.Errorf("decode balance %q: %w", amount, err)
	}
	return value, nil
}

// SetBalance upserts the balance for address on network.
func (s *Store) SetBalance(ctx context.Context, address string, network wallet.Network, amount *uint256.Int) error {
	if amount == nil {
		return fmt.Errorf("amount is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO balances (address, protocol_family, network_id, chain_id, amount, updated_at_ms)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (address, protocol_family, network_id)
		 DO UPDATE SET chain_id = excluded.chain_id, amount = excluded.amount, updated_at_ms = excluded.updated_at_ms`,
		address, network.ProtocolFamily, network.NetworkID, network.ChainID,
		amount.Dec(), time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}
	return nil
}
