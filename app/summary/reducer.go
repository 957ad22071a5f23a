package summary

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"feedherald/app/content"
	"feedherald/app/metrics"
)

var errSummaryRejected = errors.New("summary failed validity gate")

const (
	// maxInputWords bounds what we send to a remote provider; inference
	// models reject overlong inputs.
	maxInputWords = 500

	warmupAttempts  = 3
	warmupBaseDelay = 2 * time.Second
)

// Reducer produces the bounded-length notification body: a remote
// summarization attempt with warm-up retry when a provider is configured,
// then deterministic sentence-safe truncation as the fallback. Reduce
// never fails; degraded summarization is policy, not an error.
type Reducer struct {
	provider Provider

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

func NewReducer(provider Provider) *Reducer {
	return &Reducer{
		provider: provider,
		sleep:    time.Sleep,
	}
}

func (r *Reducer) Reduce(ctx context.Context, title, body string, maxWords int) string {
	if r.provider != nil {
		if sum, ok := r.summarizeRemote(ctx, title, body, maxWords); ok {
			return CleanText(sum)
		}
	}
	return CleanText(TruncateWords(body, maxWords))
}

func (r *Reducer) summarizeRemote(ctx context.Context, title, body string, maxWords int) (string, bool) {
	input := title + ": " + TruncateWords(body, maxInputWords)
	minWords := maxWords / 2

	delay := warmupBaseDelay
	for attempt := 1; attempt <= warmupAttempts; attempt++ {
		sum, err := r.provider.Summarize(ctx, input, minWords, maxWords)
		if err == nil {
			// The validity gate assumes room for real prose; a tight word
			// budget legitimately produces shorter summaries.
			if maxWords >= 50 && !content.ValidText(sum) {
				slog.Warn("Remote summary failed validity gate, using fallback", "provider", r.provider.Name())
				metrics.ObserveSummary(r.provider.Name(), errSummaryRejected)
				return "", false
			}
			metrics.ObserveSummary(r.provider.Name(), nil)
			return sum, true
		}

		if !errors.Is(err, ErrModelLoading) {
			slog.Warn("Remote summarization failed, using fallback", "provider", r.provider.Name(), "error", err)
			metrics.ObserveSummary(r.provider.Name(), err)
			return "", false
		}

		if attempt < warmupAttempts {
			slog.Debug("Summarization model warming up, retrying", "provider", r.provider.Name(), "attempt", attempt, "delay", delay.String())
			r.sleep(delay)
			delay *= 2
		}
	}

	slog.Warn("Summarization model still loading after retries, using fallback", "provider", r.provider.Name(), "attempts", warmupAttempts)
	metrics.ObserveSummary(r.provider.Name(), ErrModelLoading)
	return "", false
}
