package sentiment

import (
	"context"

	"NewsPulse/internal/domain/models"
	domsvc "NewsPulse/internal/domain/service"
	xlogger "NewsPulse/pkg/logger"
)

// Scorer fans one piece of text out to the three analyzers. Analyzer failures
// are isolated: the failing analyzer contributes the neutral fallback 0.0 and
// the other two still produce real scores.
type Scorer struct {
	logger    *xlogger.Logger
	analyzers []domsvc.Analyzer
}

// NewScorer builds the facade. The caller owns analyzer construction and
// lifetime; nothing here is package-global.
func NewScorer(logger *xlogger.Logger, analyzers ...domsvc.Analyzer) *Scorer {
	return &Scorer{logger: logger, analyzers: analyzers}
}

// NewDefaultScorer wires the three production analyzers.
func NewDefaultScorer(logger *xlogger.Logger, finbert *FinBERTAnalyzer) *Scorer {
	return NewScorer(logger, NewVaderAnalyzer(), NewFinLexAnalyzer(), finbert)
}

// ScoreText runs every analyzer over text and returns the per-analyzer set.
func (s *Scorer) ScoreText(ctx context.Context, text string) models.SentimentSet {
	var set models.SentimentSet
	for _, a := range s.analyzers {
		score, err := a.Score(ctx, text)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("analyzer failed, using neutral fallback",
					xlogger.String("analyzer", string(a.Name())),
					xlogger.Error(err),
				)
			}
			score = 0.0
		}
		score = clampScore(score)
		v := score
		switch a.Name() {
		case models.AnalyzerNLTK:
			set.NLTK = &v
		case models.AnalyzerFinVADER:
			set.FinVADER = &v
		case models.AnalyzerFinBERT:
			set.FinBERT = &v
		}
	}
	return set
}

var _ domsvc.Scorer = (*Scorer)(nil)

func clampScore(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
