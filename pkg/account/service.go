package account

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Service registers and authenticates accounts.
type Service struct {
	repo Repository
	cost int
}

// NewService returns a Service hashing passwords at bcrypt.DefaultCost.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

// Register stores a new account for email.
func (s *Service) Register(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return ErrMissingFields
	}
	if _, err := s.repo.FindByIdentifier(ctx, email); err == nil {
		return ErrExists
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("find account: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.Create(ctx, Account{Email: email, PasswordHash: string(hash)}); err != nil {
		if errors.Is(err, ErrExists) {
			return ErrExists
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// Login checks password against the stored hash for email.
func (s *Service) Login(ctx context.Context, email, password string) (Account, error) {
	a, err := s.repo.FindByIdentifier(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return Account{}, ErrInvalidCredentials
	}
	if err != nil {
		return Account{}, fmt.Errorf("find account: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}
	return a, nil
}

// Identifiers lists every registered email.
func (s *Service) Identifiers(ctx context.Context) ([]string, error) {
	ids, err := s.repo.ListIdentifiers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return ids, nil
}
