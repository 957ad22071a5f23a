package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"feedherald/app/config"
)

// Source fetches and parses one configured feed. It is the pipeline's only
// view of the feed collaborator: a fetch or parse failure comes back as an
// error for the caller to log, never as a panic.
type Source struct {
	httpClient *http.Client
	parser     *Parser
	userAgent  string
}

func NewSource(httpClient *http.Client, parser *Parser, userAgent string) *Source {
	return &Source{
		httpClient: httpClient,
		parser:     parser,
		userAgent:  userAgent,
	}
}

func (s *Source) Fetch(ctx context.Context, f config.Feed) ([]Entry, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(f.Timeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return s.parser.Run(data)
}
