package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"cupstory/pkg/cart"
)

// Schema creates the carts table. Each row is one cart document.
const Schema = `CREATE TABLE IF NOT EXISTS carts (
	email TEXT PRIMARY KEY,
	items JSONB NOT NULL DEFAULT '[]'::jsonb,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Repository persists carts in PostgreSQL.
type Repository struct {
	db *sql.DB
}

// New creates a PostgreSQL repository.
func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Find retrieves the cart document for owner.
func (r *Repository) Find(ctx context.Context, owner string) (cart.Cart, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx, "SELECT items FROM carts WHERE email=$1", owner).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return cart.Cart{}, cart.ErrNotFound
	}
	if err != nil {
		return cart.Cart{}, err
	}
	c := cart.Cart{Owner: owner}
	if err := json.Unmarshal(raw, &c.Lines); err != nil {
		return cart.Cart{}, err
	}
	return c, nil
}

// Save upserts the cart document for c.Owner.
func (r *Repository) Save(ctx context.Context, c cart.Cart) error {
	lines := c.Lines
	if lines == nil {
		lines = []cart.Line{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO carts (email,items,updated_at) VALUES ($1,$2,now())
		 ON CONFLICT (email) DO UPDATE SET items=EXCLUDED.items, updated_at=now()`,
		c.Owner, raw)
	return err
}
