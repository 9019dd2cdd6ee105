// Package memory implements an in-memory cart repository.
package memory

import (
	"context"
	"sync"

	"cupstory/pkg/cart"
)

// Repository provides an in-memory implementation of cart.Repository.
type Repository struct {
	mu    sync.RWMutex
	carts map[string][]cart.Line
}

// New creates a new in-memory repository.
func New() *Repository {
	return &Repository{carts: make(map[string][]cart.Line)}
}

// Find retrieves the cart stored for owner.
func (r *Repository) Find(ctx context.Context, owner string) (cart.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lines, ok := r.carts[owner]
	if !ok {
		return cart.Cart{}, cart.ErrNotFound
	}
	return cart.Cart{Owner: owner, Lines: clone(lines)}, nil
}

// Save replaces the cart stored for c.Owner.
func (r *Repository) Save(ctx context.Context, c cart.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[c.Owner] = clone(c.Lines)
	return nil
}

func clone(lines []cart.Line) []cart.Line {
	out := make([]cart.Line, len(lines))
	copy(out, lines)
	return out
}
