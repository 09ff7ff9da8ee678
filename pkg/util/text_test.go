package util

import (
    "strings"
    "testing"
)

func TestNormalizeTextStripsSpecials(t *testing.T) {
    got := NormalizeText("AAPL: Q3 earnings beat — shares +5%!")
    want := "AAPL Q3 earnings beat shares 5"
    if got != want {
        t.Fatalf("got %q want %q", got, want)
    }
}

func TestNormalizeTextCollapsesWhitespace(t *testing.T) {
    got := NormalizeText("  a\t\tb \n c  ")
    if got != "a b c" {
        t.Fatalf("got %q", got)
    }
}

func TestNormalizeTextOnlyAllowedRunes(t *testing.T) {
    got := NormalizeText("éü$#@ abc123 DEF")
    if strings.Contains(got, "  ") {
        t.Fatalf("double space in %q", got)
    }
    if got != strings.TrimSpace(got) {
        t.Fatalf("not trimmed: %q", got)
    }
    for _, r := range got {
        ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == ' '
        if !ok {
            t.Fatalf("disallowed rune %q in %q", r, got)
        }
    }
}

func TestNormalizeTextEmpty(t *testing.T) {
    if NormalizeText("") != "" {
        t.Fatalf("expected empty")
    }
    if NormalizeText("!!! ...") != "" {
        t.Fatalf("expected empty for pure punctuation")
    }
}

func TestChunkWords(t *testing.T) {
    chunks := ChunkWords("a b c d e", 2)
    if len(chunks) != 3 {
        t.Fatalf("expected 3 chunks, got %d", len(chunks))
    }
    if chunks[0] != "a b" || chunks[1] != "c d" || chunks[2] != "e" {
        t.Fatalf("unexpected chunks %v", chunks)
    }
}

func TestChunkWordsBlank(t *testing.T) {
    if ChunkWords("   ", 10) != nil {
        t.Fatalf("expected nil for blank input")
    }
}
