package content

import (
	"context"

	"feedherald/app/feed"
)

// ResolvedContent is the best body text and representative media found for
// an entry. An empty MediaURL is valid and means a text-only delivery; an
// empty Body means the entry should be skipped this cycle.
type ResolvedContent struct {
	Body     string
	MediaURL string
}

// Strategy is one way of obtaining body text and/or media for an entry.
// Failures and timeouts are non-fatal: a strategy that cannot produce a
// field returns it empty and the resolver moves on.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, entry feed.Entry) (body, media string)
}
