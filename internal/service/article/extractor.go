package article

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	drepo "NewsPulse/internal/domain/repository"

	"github.com/PuerkitoBio/goquery"
)

// Extractor fetches a linked page and returns the concatenation of its
// paragraph-level text blocks.
type Extractor struct {
	client    *http.Client
	userAgent string
}

// New creates a page body extractor.
func New(timeout time.Duration, userAgent string) drepo.ArticleFetcher {
	return &Extractor{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// BodyText downloads url and joins the text of every <p> element.
func (e *Extractor) BodyText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if e.userAgent != "" {
		req.Header.Set("User-Agent", e.userAgent)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch page: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	var parts []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " "), nil
}
