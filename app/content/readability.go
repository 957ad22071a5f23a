package content

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"feedherald/app/feed"
)

// ReadabilityStrategy extracts structured article text and a top image
// from the entry's link. This is the richest strategy and runs first.
type ReadabilityStrategy struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

func NewReadabilityStrategy(httpClient *http.Client, userAgent string, timeout time.Duration) *ReadabilityStrategy {
	return &ReadabilityStrategy{
		httpClient: httpClient,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

func (s *ReadabilityStrategy) Name() string {
	return "readability"
}

func (s *ReadabilityStrategy) Attempt(ctx context.Context, entry feed.Entry) (string, string) {
	data, err := fetchPage(ctx, s.httpClient, entry.Link, s.userAgent, s.timeout)
	if err != nil {
		slog.Debug("Readability fetch failed", "link", entry.Link, "error", err)
		return "", ""
	}

	pageURL, _ := url.Parse(entry.Link)
	article, err := readability.FromReader(strings.NewReader(string(data)), pageURL)
	if err != nil {
		slog.Debug("Readability extraction failed", "link", entry.Link, "error", err)
		return "", ""
	}

	body := strings.Join(strings.Fields(article.TextContent), " ")
	if !ValidText(body) {
		slog.Debug("Readability content failed validity gate", "link", entry.Link, "words", len(strings.Fields(body)))
		body = ""
	}

	return body, article.Image
}

// fetchPage retrieves raw page bytes with a per-strategy timeout. Shared by
// the readability and raw-HTML strategies; each call is an independent
// attempt so one strategy's timeout never eats into the next one's.
func fetchPage(ctx context.Context, client *http.Client, pageURL, userAgent string, timeout time.Duration) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &httpStatusError{status: resp.StatusCode}
	}

	return io.ReadAll(resp.Body)
}

type httpStatusError struct {
	status int
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("HTTP error: %d %s", e.status, http.StatusText(e.status))
}
