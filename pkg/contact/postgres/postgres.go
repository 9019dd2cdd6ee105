package postgres

import (
	"context"
	"database/sql"
	"time"

	"cupstory/pkg/contact"
)

// Schema creates the contacts table.
const Schema = `CREATE TABLE IF NOT EXISTS contacts (
	id TEXT PRIMARY KEY,
	name TEXT,
	email TEXT,
	phone TEXT,
	subject TEXT,
	message TEXT,
	newsletter BOOLEAN NOT NULL DEFAULT false,
	date TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Sink appends contact messages to PostgreSQL.
type Sink struct {
	db *sql.DB
}

// New creates a PostgreSQL sink.
func New(db *sql.DB) *Sink {
	return &Sink{db: db}
}

// Append inserts m.
func (s *Sink) Append(ctx context.Context, m contact.Message) (contact.Message, error) {
	m = contact.Stamp(m, time.Now())
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO contacts (id,name,email,phone,subject,message,newsletter,date) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)",
		m.ID, m.Name, m.Email, m.Phone, m.Subject, m.Message, m.Newsletter, m.Date)
	if err != nil {
		return contact.Message{}, err
	}
	return m, nil
}
