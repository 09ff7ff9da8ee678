package models

import "time"

// Analyzer identifies one of the three sentiment analyzers.
type Analyzer string

const (
	AnalyzerNLTK     Analyzer = "nltk"
	AnalyzerFinVADER Analyzer = "finvader"
	AnalyzerFinBERT  Analyzer = "finbert"
)

// Analyzers enumerates the analyzer columns in output order.
var Analyzers = []Analyzer{AnalyzerNLTK, AnalyzerFinVADER, AnalyzerFinBERT}

// Category identifies the text/price source a sentiment score belongs to.
type Category string

const (
	CategoryTitle Category = "title"
	CategoryBody  Category = "body"
	CategoryPrice Category = "price"
)

// Categories enumerates the score categories in output order.
var Categories = []Category{CategoryTitle, CategoryBody, CategoryPrice}

// SentimentSet holds one score per analyzer for a single piece of text.
// A nil entry means the analyzer did not run for this text.
type SentimentSet struct {
	NLTK     *float64
	FinVADER *float64
	FinBERT  *float64
}

// Get returns the score for the given analyzer.
func (s SentimentSet) Get(a Analyzer) *float64 {
	switch a {
	case AnalyzerNLTK:
		return s.NLTK
	case AnalyzerFinVADER:
		return s.FinVADER
	case AnalyzerFinBERT:
		return s.FinBERT
	}
	return nil
}

// NewsItem is one story as collected for a ticker. After deduplication the
// Ticker field holds the sorted, comma-joined union of every ticker that ran
// the story; (Title, Link) identifies the story.
type NewsItem struct {
	Ticker      string
	PublishTime time.Time // exchange-local
	Title       string
	Link        string
	TitleScores SentimentSet
	BodyScores  SentimentSet
}

// Key identifies a story for deduplication.
type Key struct {
	Title string
	Link  string
}

// StoryKey returns the dedup key for the item.
func (n *NewsItem) StoryKey() Key {
	return Key{Title: n.Title, Link: n.Link}
}
