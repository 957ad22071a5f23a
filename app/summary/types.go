package summary

import (
	"context"
	"errors"
)

// ErrModelLoading is returned by a provider when the remote model is still
// warming up and the same request may succeed shortly. Any other provider
// error is a hard failure and goes straight to the truncation fallback.
var ErrModelLoading = errors.New("summarization model is loading")

// Provider produces a summary of text within the given word bounds.
type Provider interface {
	Name() string
	Summarize(ctx context.Context, text string, minWords, maxWords int) (string, error)
}
