package delivery

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"feedherald/app/metrics"
	"feedherald/app/summary"
)

// Scheduler sequences outbound notifications one at a time: it paces
// deliveries, honors flood-control waits, degrades failed media sends to
// text once, and decides audible vs. silent from the rolling last-audible
// timestamp. Deliver must never be called concurrently; the poll loop is
// its only caller by design.
type Scheduler struct {
	sink       Sink
	branding   string
	maxRetries int
	cooldown   time.Duration
	delay      time.Duration

	lastOutcome time.Time
	lastAudible time.Time

	// injected for tests
	now   func() time.Time
	sleep func(time.Duration)
}

func NewScheduler(sink Sink, branding string, deliveryDelay time.Duration, maxRetries int, cooldown time.Duration) *Scheduler {
	return &Scheduler{
		sink:       sink,
		branding:   branding,
		maxRetries: maxRetries,
		cooldown:   cooldown,
		delay:      deliveryDelay,
		now:        time.Now,
		sleep:      time.Sleep,
	}
}

func (s *Scheduler) Deliver(ctx context.Context, n Notification) Result {
	if ctx.Err() != nil {
		return Aborted
	}

	// Inter-delivery pacing is anchored at the previous terminal outcome,
	// not at the start of the previous delivery: an attempt sequence
	// stretched by flood waits still leaves the full delay before the next
	// send.
	if wait := s.delay - s.now().Sub(s.lastOutcome); wait > 0 {
		s.sleep(wait)
		if ctx.Err() != nil {
			return Aborted
		}
	}

	caption := summary.BuildCaption(n.Title, n.Summary, s.branding)

	mediaAllowed := n.MediaURL != ""
	retries := 0

	for {
		// Recomputed per attempt: a flood wait can outlast the cooldown,
		// and the decision must reflect the actual send time.
		silent := s.now().Sub(s.lastAudible) < s.cooldown

		err := s.send(ctx, n, caption, silent, mediaAllowed)
		if err == nil {
			if !silent {
				s.lastAudible = s.now()
			}
			s.lastOutcome = s.now()
			slog.Info("Notification delivered", "title", n.Title, "silent", silent, "media", mediaAllowed)
			return Sent
		}

		// Shutdown is not a delivery verdict: leave the entry unmarked so
		// the next cycle retries it.
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			slog.Warn("Delivery aborted mid-flight", "title", n.Title, "error", err)
			return Aborted
		}

		var flood *FloodError
		if errors.As(err, &flood) {
			if retries >= s.maxRetries {
				slog.Error("Delivery dropped: flood-control retries exhausted", "title", n.Title, "retries", retries)
				s.lastOutcome = s.now()
				return DroppedRetryExhausted
			}
			retries++
			slog.Warn("Flood control, suspending before retry", "title", n.Title, "wait", flood.RetryAfter.String(), "attempt", retries)
			metrics.ObserveFloodWait(flood.RetryAfter.Seconds())
			s.sleep(flood.RetryAfter)
			continue
		}

		if mediaAllowed {
			// The sink rejected the media payload itself. Degrade to a
			// text-only delivery of the same caption, once.
			slog.Warn("Media rejected, degrading to text-only", "title", n.Title, "media_url", n.MediaURL, "error", err)
			mediaAllowed = false
			continue
		}

		slog.Error("Delivery dropped: permanent error", "title", n.Title, "error", err)
		s.lastOutcome = s.now()
		return DroppedPermanent
	}
}

func (s *Scheduler) send(ctx context.Context, n Notification, caption string, silent, mediaAllowed bool) error {
	if mediaAllowed {
		return s.sink.SendPhoto(ctx, n.MediaURL, caption, silent)
	}
	return s.sink.SendText(ctx, caption, silent)
}
