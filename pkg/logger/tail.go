package logger

import (
	"context"
	"fmt"
	"sync"
)

// ErrorTail is a Publisher that keeps the most recent aggregated warn/error
// entries in memory so the API can serve them. Oldest entries are dropped
// once the limit is reached.
type ErrorTail struct {
	mu      sync.Mutex
	entries []AggregatedLogEntry
	max     int
}

func NewErrorTail(max int) *ErrorTail {
	if max <= 0 {
		max = 100
	}
	return &ErrorTail{max: max}
}

// PublishMessage receives a flushed batch from the collector.
func (t *ErrorTail) PublishMessage(_ context.Context, _ string, payload interface{}) error {
	batch, ok := payload.([]AggregatedLogEntry)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", payload)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, batch...)
	if len(t.entries) > t.max {
		t.entries = t.entries[len(t.entries)-t.max:]
	}
	return nil
}

// Entries returns a copy of the retained entries, newest last.
func (t *ErrorTail) Entries() []AggregatedLogEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]AggregatedLogEntry, len(t.entries))
	copy(out, t.entries)
	return out
}
