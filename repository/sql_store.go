package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"storefront-pricing/db"
)

// sqlDialect holds the statements that differ between drivers
type sqlDialect struct {
	createTable string
	selectValue string
	upsertValue string
	deleteValue string
}

var dialects = map[string]sqlDialect{
	db.DriverPostgres: {
		createTable: `
			CREATE TABLE IF NOT EXISTS storefront_state (
				key        TEXT PRIMARY KEY,
				value      TEXT NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`,
		selectValue: `SELECT value FROM storefront_state WHERE key = $1`,
		upsertValue: `
			INSERT INTO storefront_state (key, value, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		`,
		deleteValue: `DELETE FROM storefront_state WHERE key = $1`,
	},
	db.DriverSQLite: {
		createTable: `
			CREATE TABLE IF NOT EXISTS storefront_state (
				key        TEXT PRIMARY KEY,
				value      TEXT NOT NULL,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`,
		selectValue: `SELECT value FROM storefront_state WHERE key = ?`,
		upsertValue: `
			INSERT INTO storefront_state (key, value, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
		`,
		deleteValue: `DELETE FROM storefront_state WHERE key = ?`,
	},
}

// SQLStore is a StateStore backed by a single storefront_state table
type SQLStore struct {
	db      *sql.DB
	dialect sqlDialect
}

// NewSQLStore creates a SQLStore for the given driver and ensures its table exists
func NewSQLStore(ctx context.Context, conn *sql.DB, driver string) (*SQLStore, error) {
	dialect, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	if _, err := conn.ExecContext(ctx, dialect.createTable); err != nil {
		log.Printf("❌ NewSQLStore: Error creating storefront_state table: %v", err)
		return nil, fmt.Errorf("failed to create storefront_state table: %w", err)
	}

	log.Printf("✓ SQL state store ready (driver=%s)", driver)
	return &SQLStore{db: conn, dialect: dialect}, nil
}

// Ensure SQLStore implements StateStore
var _ StateStore = (*SQLStore)(nil)

// Load reads the value stored under key
func (s *SQLStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.dialect.selectValue, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		log.Printf("❌ SQLStore.Load: Error fetching key=%s: %v", key, err)
		return nil, false, fmt.Errorf("failed to fetch %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Save upserts the value under key
func (s *SQLStore) Save(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.upsertValue, key, string(value)); err != nil {
		log.Printf("❌ SQLStore.Save: Error writing key=%s: %v", key, err)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete removes key; deleting an absent key is not an error
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.deleteValue, key); err != nil {
		log.Printf("❌ SQLStore.Delete: Error deleting key=%s: %v", key, err)
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
