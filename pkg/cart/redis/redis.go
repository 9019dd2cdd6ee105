// Package redis stores cart documents as JSON values in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	"cupstory/pkg/cart"
)

const keyPrefix = "cart:"

// Repository persists carts in Redis, one key per owner.
type Repository struct {
	client goredis.Cmdable
}

// New creates a Redis repository.
func New(client goredis.Cmdable) *Repository {
	return &Repository{client: client}
}

// Find retrieves the cart document for owner.
func (r *Repository) Find(ctx context.Context, owner string) (cart.Cart, error) {
	raw, err := r.client.Get(ctx, keyPrefix+owner).Bytes()
	if errors.Is(err, goredis.Nil) {
		return cart.Cart{}, cart.ErrNotFound
	}
	if err != nil {
		return cart.Cart{}, err
	}
	var c cart.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return cart.Cart{}, err
	}
	c.Owner = owner
	return c, nil
}

// Save replaces the cart document for c.Owner. Carts never expire.
func (r *Repository) Save(ctx context.Context, c cart.Cart) error {
	if c.Lines == nil {
		c.Lines = []cart.Line{}
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, keyPrefix+c.Owner, raw, 0).Err()
}
