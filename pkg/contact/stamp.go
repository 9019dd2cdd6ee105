package contact

import (
	"time"

	"github.com/google/uuid"
)

// Stamp fills in a missing id and date. Sinks call it before storing.
func Stamp(m Message, now time.Time) Message {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Date.IsZero() {
		m.Date = now.UTC()
	}
	return m
}
