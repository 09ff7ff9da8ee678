package sentiment

import (
	"context"
	"fmt"
	"sync"

	"NewsPulse/internal/domain/models"
	xhttp "NewsPulse/pkg/http"
	"NewsPulse/pkg/util"
)

// FinBERTAnalyzer scores text through an HTTP text-classification service
// hosting the FinBERT model. The model weights load inside the service on the
// first request, so the analyzer sends a warmup request before real scoring
// and remembers once it has succeeded.
type FinBERTAnalyzer struct {
	baseURL   string
	client    *xhttp.Client
	maxTokens int

	warmMu sync.Mutex
	warmed bool
}

// FinBERTOption configures FinBERTAnalyzer.
type FinBERTOption func(*FinBERTAnalyzer)

// NewFinBERTAnalyzer builds the transformer analyzer client.
func NewFinBERTAnalyzer(baseURL string, client *xhttp.Client, opts ...FinBERTOption) *FinBERTAnalyzer {
	a := &FinBERTAnalyzer{
		baseURL:   baseURL,
		client:    client,
		maxTokens: 500,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WithMaxTokens sets the chunking threshold in token-equivalents.
func WithMaxTokens(n int) FinBERTOption {
	return func(a *FinBERTAnalyzer) {
		if n > 0 {
			a.maxTokens = n
		}
	}
}

func (a *FinBERTAnalyzer) Name() models.Analyzer { return models.AnalyzerFinBERT }

type classifyReq struct {
	Text string `json:"text"`
}

type classifyResp struct {
	Label string  `json:"label"` // positive | negative | neutral
	Score float64 `json:"score"`
}

// Score chunks the text to respect the model's input-length limit, scores
// each chunk, and returns the mean. A word is counted as up to two tokens,
// so chunks hold maxTokens/2 words.
func (a *FinBERTAnalyzer) Score(ctx context.Context, text string) (float64, error) {
	if a.baseURL == "" {
		return 0, fmt.Errorf("finbert url not configured")
	}

	if err := a.warmup(ctx); err != nil {
		return 0, fmt.Errorf("finbert warmup: %w", err)
	}

	chunks := util.ChunkWords(text, a.maxTokens/2)
	if len(chunks) == 0 {
		return 0, nil
	}

	var sum float64
	for _, chunk := range chunks {
		var cr classifyResp
		if err := a.classify(ctx, chunk, &cr); err != nil {
			return 0, err
		}
		switch cr.Label {
		case "positive":
			sum += cr.Score
		case "negative":
			sum -= cr.Score
		default:
			// neutral contributes 0.0
		}
	}
	return sum / float64(len(chunks)), nil
}

// warmup sends one request so the service loads the model before real
// scoring. Only success latches; a failed warmup is retried on the next call.
func (a *FinBERTAnalyzer) warmup(ctx context.Context) error {
	a.warmMu.Lock()
	defer a.warmMu.Unlock()
	if a.warmed {
		return nil
	}
	if err := a.classify(ctx, "warmup", nil); err != nil {
		return err
	}
	a.warmed = true
	return nil
}

func (a *FinBERTAnalyzer) classify(ctx context.Context, text string, dest *classifyResp) error {
	err := a.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    a.baseURL + "/classify",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: classifyReq{Text: text},
	}, dest)
	if err != nil {
		return fmt.Errorf("post classify: %w", err)
	}
	return nil
}
