package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

type ctxKey struct{}

func traceFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func decode(t *testing.T, line string) map[string]any {
	t.Helper()
	var rec map[string]any
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		t.Fatalf("decode %q: %v", line, err)
	}
	return rec
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelInfo, "cupstory", traceFromCtx)

	ctx := context.WithValue(context.Background(), ctxKey{}, "abc123")
	log.Info(ctx, "cart saved", "owner", "a@x.com")
	log.Info(context.Background(), "no trace")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 records, got %d: %s", len(lines), buf.String())
	}
	first := decode(t, lines[0])
	if first["service"] != "cupstory" || first["trace_id"] != "abc123" || first["owner"] != "a@x.com" {
		t.Fatalf("unexpected record: %v", first)
	}
	if _, ok := decode(t, lines[1])["trace_id"]; ok {
		t.Fatal("trace_id should be omitted without a span")
	}
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelWarn, "cupstory", nil)
	log.Debug(context.Background(), "hidden")
	log.Info(context.Background(), "hidden")
	log.Error(context.Background(), "shown")
	if n := strings.Count(buf.String(), "\n"); n != 1 {
		t.Fatalf("expected 1 record, got %d: %s", n, buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"debug": LevelDebug, "WARN": LevelWarn, "error": LevelError, "": LevelInfo, "bogus": LevelInfo}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
