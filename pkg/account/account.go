// Package account manages credential records keyed by email.
package account

import (
	"context"
	"errors"
)

// Account is a stored credential record.
type Account struct {
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// Repository defines behavior for persisting accounts.
type Repository interface {
	FindByIdentifier(ctx context.Context, email string) (Account, error)
	Create(ctx context.Context, a Account) error
	ListIdentifiers(ctx context.Context) ([]string, error)
}

var (
	// ErrNotFound indicates no account exists for the identifier.
	ErrNotFound = errors.New("account not found")
	// ErrExists indicates the identifier is already registered.
	ErrExists = errors.New("email already exists")
	// ErrInvalidCredentials is returned by Login on an unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingFields is returned when email or password is empty.
	ErrMissingFields = errors.New("email and password are required")
)
