package logger

import (
	"context"
	"testing"
	"time"
)

func TestCollectorAggregatesRepeatedMessages(t *testing.T) {
	tail := NewErrorTail(10)
	c := NewLogCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 100,
		Topic:          "errors",
		Publisher:      tail,
	})

	c.AddLog("warn", "page fetch failed", map[string]interface{}{"ticker": "AAA"}, "collector.go:50")
	c.AddLog("warn", "page fetch failed", map[string]interface{}{"ticker": "BBB"}, "collector.go:50")
	c.AddLog("error", "feed fetch failed", nil, "collector.go:36")
	c.Close()

	// Close flushes asynchronously.
	deadline := time.Now().Add(2 * time.Second)
	var entries []AggregatedLogEntry
	for time.Now().Before(deadline) {
		entries = tail.Entries()
		if len(entries) == 2 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 aggregated", len(entries))
	}
	for _, e := range entries {
		if e.Message == "page fetch failed" && e.Count != 2 {
			t.Errorf("repeated message count = %d, want 2", e.Count)
		}
	}
}

func TestErrorTailDropsOldest(t *testing.T) {
	tail := NewErrorTail(2)
	for _, msg := range []string{"a", "b", "c"} {
		if err := tail.PublishMessage(context.Background(), "errors", []AggregatedLogEntry{{Message: msg}}); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}
	entries := tail.Entries()
	if len(entries) != 2 || entries[0].Message != "b" || entries[1].Message != "c" {
		t.Fatalf("tail = %+v, want the two newest entries", entries)
	}
}

func TestLoggerRoutesWarnsToCollector(t *testing.T) {
	tail := NewErrorTail(10)
	log, err := New(&Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	log.AddCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 100,
		Topic:          "errors",
		Publisher:      tail,
	})

	log.Warn("quote stream unavailable", String("url", "wss://x"))
	log.RemoveCollector()

	deadline := time.Now().Add(2 * time.Second)
	var entries []AggregatedLogEntry
	for time.Now().Before(deadline) {
		entries = tail.Entries()
		if len(entries) == 1 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if len(entries) != 1 || entries[0].Message != "quote stream unavailable" {
		t.Fatalf("tail = %+v, want the warn entry", entries)
	}
}
