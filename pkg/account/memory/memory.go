// Package memory implements an in-memory account repository.
package memory

import (
	"context"
	"sort"
	"sync"

	"cupstory/pkg/account"
)

// Repository provides an in-memory implementation of account.Repository.
type Repository struct {
	mu       sync.RWMutex
	accounts map[string]account.Account
}

// New creates a new in-memory repository.
func New() *Repository {
	return &Repository{accounts: make(map[string]account.Account)}
}

func (r *Repository) FindByIdentifier(ctx context.Context, email string) (account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[email]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	return a, nil
}

func (r *Repository) Create(ctx context.Context, a account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[a.Email]; ok {
		return account.ErrExists
	}
	r.accounts[a.Email] = a
	return nil
}

// ListIdentifiers returns emails in lexical order.
func (r *Repository) ListIdentifiers(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.accounts))
	for email := range r.accounts {
		out = append(out, email)
	}
	sort.Strings(out)
	return out, nil
}
