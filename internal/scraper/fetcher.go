package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PageFetcher retrieves the raw text of a career page. It sits behind an
// interface so the orchestrator can be exercised with canned pages in tests.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// HTTPFetcher is the production PageFetcher: one shared client with a hard
// timeout, bodies capped at MaxInputBytes, non-2xx reported as an error.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher constructs a fetcher. timeout <= 0 gets a 15s default —
// target pages are uncontrolled and an unresponsive one must not stall the
// whole run.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "jobsentry/1.0 (+career page monitor)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxInputBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	return string(body), nil
}
