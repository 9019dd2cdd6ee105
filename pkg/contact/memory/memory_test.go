package memory

import (
	"context"
	"testing"
	"time"

	"cupstory/pkg/contact"
)

func TestAppend(t *testing.T) {
	s := New()
	m, err := s.Append(context.Background(), contact.Message{Name: "Ann", Email: "a@x.com", Message: "hi"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if m.ID == "" {
		t.Fatal("expected generated id")
	}
	if m.Date.IsZero() {
		t.Fatal("expected date to default to now")
	}

	when := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m2, _ := s.Append(context.Background(), contact.Message{ID: "fixed", Date: when})
	if m2.ID != "fixed" || !m2.Date.Equal(when) {
		t.Fatalf("explicit id/date overwritten: %+v", m2)
	}

	got := s.Messages()
	if len(got) != 2 || got[0].Name != "Ann" {
		t.Fatalf("unexpected messages: %+v", got)
	}
}
