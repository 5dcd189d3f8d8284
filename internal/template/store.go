package template

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

// Source loads the template pair for a shop. The webhook pipeline depends on
// this interface, never on the concrete store.
type Source interface {
	Get(ctx context.Context, shopDomain string) (ShopTemplates, error)
}

// Store persists per-shop templates in a SQLite database. A shop with no row
// gets the built-in defaults; updates overwrite the pair wholesale.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the template database at path.
// Use ":memory:" for an ephemeral store in tests.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open template store: %w", err)
	}
	// modernc.org/sqlite serializes access per connection; a single
	// connection avoids SQLITE_BUSY under concurrent webhook deliveries.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS shop_templates (
			shop_domain        TEXT PRIMARY KEY,
			order_confirmation TEXT NOT NULL,
			fulfillment        TEXT NOT NULL,
			updated_at         TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("init template store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the template pair for a shop, falling back to the built-in
// defaults when the shop has no record. A stored record with an empty field
// also falls back per field, so a half-configured shop still gets usable
// messages.
func (s *Store) Get(ctx context.Context, shopDomain string) (ShopTemplates, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT order_confirmation, fulfillment FROM shop_templates WHERE shop_domain = ?`,
		shopDomain,
	)

	var t ShopTemplates
	err := row.Scan(&t.OrderConfirmation, &t.Fulfillment)
	if errors.Is(err, sql.ErrNoRows) {
		return Defaults(), nil
	}
	if err != nil {
		return ShopTemplates{}, fmt.Errorf("load templates for %s: %w", shopDomain, err)
	}

	if t.OrderConfirmation == "" {
		t.OrderConfirmation = DefaultOrderConfirmation
	}
	if t.Fulfillment == "" {
		t.Fulfillment = DefaultFulfillment
	}
	return t, nil
}

// Put overwrites the template pair for a shop.
func (s *Store) Put(ctx context.Context, shopDomain string, t ShopTemplates) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO shop_templates (shop_domain, order_confirmation, fulfillment, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(shop_domain) DO UPDATE SET
		   order_confirmation = excluded.order_confirmation,
		   fulfillment        = excluded.fulfillment,
		   updated_at         = CURRENT_TIMESTAMP`,
		shopDomain, t.OrderConfirmation, t.Fulfillment,
	)
	if err != nil {
		return fmt.Errorf("save templates for %s: %w", shopDomain, err)
	}
	return nil
}

// Delete removes a shop's custom templates, reverting it to the defaults.
// Deleting a shop with no record is a no-op.
func (s *Store) Delete(ctx context.Context, shopDomain string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM shop_templates WHERE shop_domain = ?`, shopDomain)
	if err != nil {
		return fmt.Errorf("delete templates for %s: %w", shopDomain, err)
	}
	return nil
}
