// Package contact stores messages submitted through the contact form.
package contact

import (
	"context"
	"time"
)

// Message is one contact form submission.
type Message struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	Newsletter bool      `json:"newsletter"`
	Date       time.Time `json:"date"`
}

// Sink is an append-only message store.
type Sink interface {
	Append(ctx context.Context, m Message) (Message, error)
}
