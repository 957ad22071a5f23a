package content

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"feedherald/app/feed"
)

const DefaultStrategyTimeout = 10 * time.Second

// Resolver runs an ordered list of strategies until it has body text and a
// media URL. The two resolve independently: a later strategy's media fills
// in when an earlier one supplied body but no image.
type Resolver struct {
	strategies []Strategy
}

func NewResolver(strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies}
}

// NewDefaultResolver wires the production strategy order: structured
// readability extraction, raw-HTML paragraph scraping, then whatever the
// feed itself supplied.
func NewDefaultResolver(httpClient *http.Client, userAgent string, timeout time.Duration) *Resolver {
	return NewResolver(
		NewReadabilityStrategy(httpClient, userAgent, timeout),
		NewRawHTMLStrategy(httpClient, userAgent, timeout),
		FeedNativeStrategy{},
	)
}

func (r *Resolver) Resolve(ctx context.Context, entry feed.Entry) ResolvedContent {
	var resolved ResolvedContent

	for _, strategy := range r.strategies {
		if resolved.Body != "" && resolved.MediaURL != "" {
			break
		}

		body, media := strategy.Attempt(ctx, entry)

		if resolved.Body == "" && body != "" {
			resolved.Body = body
			slog.Debug("Body text resolved", "strategy", strategy.Name(), "guid", entry.GUID, "length", len(body))
		}
		if resolved.MediaURL == "" && media != "" {
			resolved.MediaURL = media
			slog.Debug("Media resolved", "strategy", strategy.Name(), "guid", entry.GUID)
		}
	}

	return resolved
}

// FeedNativeStrategy is the terminal fallback: the entry's own summary and
// enclosure. It performs no network calls and, unlike the extraction
// strategies, accepts short text — a feed-supplied one-liner beats
// skipping the entry.
type FeedNativeStrategy struct{}

func (FeedNativeStrategy) Name() string {
	return "feed-native"
}

func (FeedNativeStrategy) Attempt(_ context.Context, entry feed.Entry) (string, string) {
	return entry.Summary, entry.MediaURL
}
