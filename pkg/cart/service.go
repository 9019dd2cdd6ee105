package cart

import (
	"context"
	"errors"
	"fmt"
)

// Service applies cart operations on top of a Repository.
type Service struct {
	repo Repository
}

// NewService returns a Service backed by repo.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// FindOrCreate returns the stored cart for owner or a new empty one. A new
// cart is not persisted until the first AddItem.
func (s *Service) FindOrCreate(ctx context.Context, owner string) (Cart, error) {
	if owner == "" {
		return Cart{}, ErrOwnerRequired
	}
	c, err := s.repo.Find(ctx, owner)
	if errors.Is(err, ErrNotFound) {
		return Cart{Owner: owner, Lines: []Line{}}, nil
	}
	if err != nil {
		return Cart{}, fmt.Errorf("find cart: %w", err)
	}
	return c, nil
}

// AddItem merges line into the owner's cart and returns the saved cart.
func (s *Service) AddItem(ctx context.Context, owner string, line Line) (Cart, error) {
	line, err := normalize(line)
	if err != nil {
		return Cart{}, err
	}
	c, err := s.FindOrCreate(ctx, owner)
	if err != nil {
		return Cart{}, err
	}
	c.Lines = Merge(c.Lines, line)
	if err := s.repo.Save(ctx, c); err != nil {
		return Cart{}, fmt.Errorf("save cart: %w", err)
	}
	return c, nil
}

// Clear empties the owner's cart. Clearing an owner without a cart succeeds
// and stores nothing.
func (s *Service) Clear(ctx context.Context, owner string) error {
	if owner == "" {
		return ErrOwnerRequired
	}
	c, err := s.repo.Find(ctx, owner)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("find cart: %w", err)
	}
	c.Lines = []Line{}
	if err := s.repo.Save(ctx, c); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Get returns the owner's lines, empty when the owner has no cart.
func (s *Service) Get(ctx context.Context, owner string) ([]Line, error) {
	c, err := s.FindOrCreate(ctx, owner)
	if err != nil {
		return nil, err
	}
	if c.Lines == nil {
		return []Line{}, nil
	}
	return c.Lines, nil
}
