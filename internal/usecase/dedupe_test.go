package usecase

import (
	"testing"
	"time"

	"NewsPulse/internal/domain/models"
)

func TestDeduplicateMergesSameStory(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(5 * time.Minute)

	items := []*models.NewsItem{
		{Ticker: "BBB", PublishTime: t2, Title: "X", Link: "Y"},
		{Ticker: "AAA", PublishTime: t1, Title: "X", Link: "Y"},
	}

	out := Deduplicate(items)
	if len(out) != 1 {
		t.Fatalf("got %d items, want 1", len(out))
	}
	if out[0].Ticker != "AAA,BBB" {
		t.Errorf("ticker = %q, want AAA,BBB", out[0].Ticker)
	}
	if !out[0].PublishTime.Equal(t1) {
		t.Errorf("publish time = %v, want earliest %v", out[0].PublishTime, t1)
	}
}

func TestDeduplicateKeepsDistinctStories(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	items := []*models.NewsItem{
		{Ticker: "AAA", PublishTime: t1, Title: "X", Link: "Y"},
		{Ticker: "AAA", PublishTime: t1, Title: "X", Link: "Z"},
		{Ticker: "AAA", PublishTime: t1, Title: "W", Link: "Y"},
	}
	if out := Deduplicate(items); len(out) != 3 {
		t.Fatalf("got %d items, want 3 (title+link both identify a story)", len(out))
	}
}

func TestDeduplicateUnionsAlreadyJoinedTickers(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	items := []*models.NewsItem{
		{Ticker: "CCC,AAA", PublishTime: t1, Title: "X", Link: "Y"},
		{Ticker: "AAA", PublishTime: t1.Add(time.Minute), Title: "X", Link: "Y"},
	}
	out := Deduplicate(items)
	if len(out) != 1 || out[0].Ticker != "AAA,CCC" {
		t.Fatalf("got %+v, want one item with ticker AAA,CCC", out)
	}
}
