package sentiment

import (
	"context"

	"NewsPulse/internal/domain/models"
	"NewsPulse/pkg/util"

	"github.com/jonreiter/govader"
)

// VaderAnalyzer scores text with the general-purpose VADER compound lexicon.
type VaderAnalyzer struct {
	sia *govader.SentimentIntensityAnalyzer
}

// NewVaderAnalyzer builds the lexicon analyzer. The underlying lexicon is
// embedded in the library, so construction never fails.
func NewVaderAnalyzer() *VaderAnalyzer {
	return &VaderAnalyzer{sia: govader.NewSentimentIntensityAnalyzer()}
}

func (a *VaderAnalyzer) Name() models.Analyzer { return models.AnalyzerNLTK }

// Score returns the compound polarity of the normalized text, already in [-1, 1].
func (a *VaderAnalyzer) Score(_ context.Context, text string) (float64, error) {
	cleaned := util.NormalizeText(text)
	if cleaned == "" {
		return 0, nil
	}
	return a.sia.PolarityScores(cleaned).Compound, nil
}
