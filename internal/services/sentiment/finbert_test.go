package sentiment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	xhttp "NewsPulse/pkg/http"
)

func finbertServer(t *testing.T, label string, score float64, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/classify" {
			http.NotFound(w, r)
			return
		}
		*calls++
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"label": label,
			"score": score,
		})
	}))
}

func TestFinBERTPositiveLabel(t *testing.T) {
	var calls int
	srv := finbertServer(t, "positive", 0.9, &calls)
	defer srv.Close()

	a := NewFinBERTAnalyzer(srv.URL, xhttp.NewClient())
	got, err := a.Score(context.Background(), "shares rally")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if got != 0.9 {
		t.Fatalf("got %v want 0.9", got)
	}
}

func TestFinBERTNegativeLabel(t *testing.T) {
	var calls int
	srv := finbertServer(t, "negative", 0.8, &calls)
	defer srv.Close()

	a := NewFinBERTAnalyzer(srv.URL, xhttp.NewClient())
	got, err := a.Score(context.Background(), "shares plunge")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if got != -0.8 {
		t.Fatalf("got %v want -0.8", got)
	}
}

func TestFinBERTNeutralLabel(t *testing.T) {
	var calls int
	srv := finbertServer(t, "neutral", 0.99, &calls)
	defer srv.Close()

	a := NewFinBERTAnalyzer(srv.URL, xhttp.NewClient())
	got, err := a.Score(context.Background(), "company holds meeting")
	if err != nil || got != 0 {
		t.Fatalf("got %v %v, want 0", got, err)
	}
}

func TestFinBERTChunksLongText(t *testing.T) {
	var calls int
	srv := finbertServer(t, "positive", 1.0, &calls)
	defer srv.Close()

	// maxTokens 10 -> 5 words per chunk; 12 words -> 3 chunks (+1 warmup call).
	a := NewFinBERTAnalyzer(srv.URL, xhttp.NewClient(), WithMaxTokens(10))
	text := strings.Repeat("good ", 12)
	got, err := a.Score(context.Background(), text)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if calls != 4 {
		t.Fatalf("expected 3 chunk calls plus warmup, got %d", calls)
	}
	if got != 1.0 {
		t.Fatalf("mean of identical chunks should be 1.0, got %v", got)
	}
}

func TestFinBERTServiceDown(t *testing.T) {
	a := NewFinBERTAnalyzer("http://127.0.0.1:1", xhttp.NewClient())
	if _, err := a.Score(context.Background(), "anything"); err == nil {
		t.Fatalf("expected error when service unreachable")
	}
}

func TestFinBERTWarmupRetriesAfterFailure(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "model loading", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"label": "positive",
			"score": 0.7,
		})
	}))
	defer srv.Close()

	a := NewFinBERTAnalyzer(srv.URL, xhttp.NewClient())
	if _, err := a.Score(context.Background(), "shares rally"); err == nil {
		t.Fatalf("expected error while the service is still loading")
	}
	got, err := a.Score(context.Background(), "shares rally")
	if err != nil {
		t.Fatalf("expected warmup retry to succeed: %v", err)
	}
	if got != 0.7 {
		t.Fatalf("got %v want 0.7", got)
	}
	if calls != 3 { // failed warmup, successful warmup, one chunk
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestFinBERTEmptyText(t *testing.T) {
	var calls int
	srv := finbertServer(t, "positive", 0.9, &calls)
	defer srv.Close()

	a := NewFinBERTAnalyzer(srv.URL, xhttp.NewClient())
	got, err := a.Score(context.Background(), "   ")
	if err != nil || got != 0 {
		t.Fatalf("blank text should be neutral, got %v %v", got, err)
	}
	if calls != 1 { // warmup only
		t.Fatalf("expected warmup call only, got %d", calls)
	}
}
