package sentiment

import (
	"context"
	"strings"

	"NewsPulse/internal/domain/models"
	"NewsPulse/pkg/util"

	"github.com/jonreiter/govader"
)

// FinLexAnalyzer is the finance-lexicon variant: the VADER compound score
// blended with a finance-domain word list, so earnings vocabulary ("beat",
// "miss", "downgrade") moves the indicator the way it moves traders rather
// than the way it reads in everyday English.
type FinLexAnalyzer struct {
	sia     *govader.SentimentIntensityAnalyzer
	lexicon map[string]float64
}

func NewFinLexAnalyzer() *FinLexAnalyzer {
	return &FinLexAnalyzer{
		sia:     govader.NewSentimentIntensityAnalyzer(),
		lexicon: financeLexicon,
	}
}

func (a *FinLexAnalyzer) Name() models.Analyzer { return models.AnalyzerFinVADER }

// Score returns the blended compound indicator in [-1, 1].
func (a *FinLexAnalyzer) Score(_ context.Context, text string) (float64, error) {
	cleaned := util.NormalizeText(text)
	if cleaned == "" {
		return 0, nil
	}

	base := a.sia.PolarityScores(cleaned).Compound

	var sum float64
	var hits int
	for _, w := range strings.Fields(strings.ToLower(cleaned)) {
		if v, ok := a.lexicon[w]; ok {
			sum += v
			hits++
		}
	}
	if hits == 0 {
		return base, nil
	}

	// Equal-weight blend of the general compound and the finance valence.
	fin := sum / float64(hits)
	return clamp((base + fin) / 2), nil
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
