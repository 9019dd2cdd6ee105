package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"cupstory/pkg/account"
)

// Schema creates the users table.
const Schema = `CREATE TABLE IF NOT EXISTS users (
	email TEXT PRIMARY KEY,
	password TEXT NOT NULL
)`

const uniqueViolation = "23505"

// Repository persists accounts in PostgreSQL.
type Repository struct {
	db *sql.DB
}

// New creates a PostgreSQL repository.
func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// FindByIdentifier retrieves an account by email.
func (r *Repository) FindByIdentifier(ctx context.Context, email string) (account.Account, error) {
	var a account.Account
	err := r.db.QueryRowContext(ctx, "SELECT email,password FROM users WHERE email=$1", email).Scan(&a.Email, &a.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return account.Account{}, account.ErrNotFound
	}
	return a, err
}

// Create inserts a new account. A concurrent registration of the same email
// surfaces as account.ErrExists.
func (r *Repository) Create(ctx context.Context, a account.Account) error {
	_, err := r.db.ExecContext(ctx, "INSERT INTO users (email,password) VALUES ($1,$2)", a.Email, a.PasswordHash)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return account.ErrExists
	}
	return err
}

// ListIdentifiers fetches all emails.
func (r *Repository) ListIdentifiers(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT email FROM users ORDER BY email")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	emails := []string{}
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}
