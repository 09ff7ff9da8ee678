package article

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestBodyTextJoinsParagraphs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			<div>nav junk</div>
			<p>First paragraph.</p>
			<p> Second paragraph. </p>
			<p></p>
			<script>var x;</script>
		</body></html>`))
	}))
	defer srv.Close()

	e := New(5*time.Second, "newspulse-test")
	got, err := e.BodyText(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("body text: %v", err)
	}
	if got != "First paragraph. Second paragraph." {
		t.Fatalf("got %q", got)
	}
}

func TestBodyTextStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	e := New(5*time.Second, "")
	if _, err := e.BodyText(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected error for non-2xx status")
	}
}
