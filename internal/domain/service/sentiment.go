package service

import (
	"context"

	"NewsPulse/internal/domain/models"
)

// Analyzer maps cleaned text to a compound score in [-1, 1].
type Analyzer interface {
	Name() models.Analyzer
	Score(ctx context.Context, text string) (float64, error)
}

// Scorer runs every analyzer over one piece of text. Implementations isolate
// analyzer failures: a failing analyzer contributes the neutral fallback 0.0
// and never aborts the item.
type Scorer interface {
	ScoreText(ctx context.Context, text string) models.SentimentSet
}
