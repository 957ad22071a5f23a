package delivery

import (
	"context"
	"fmt"
	"time"
)

// Notification is the unit handed to the scheduler: a title and final
// summary sized to fit the sink's caption limit, plus an optional media
// URL. Audibility is decided by the scheduler at send time.
type Notification struct {
	Title    string
	Summary  string
	MediaURL string
}

// Result is the terminal outcome of a delivery attempt sequence.
type Result int

const (
	// Sent means the sink accepted the notification.
	Sent Result = iota
	// DroppedPermanent means the sink rejected the payload in a way a
	// retry cannot fix; the notification is logged and dropped.
	DroppedPermanent
	// DroppedRetryExhausted means flood control persisted past the retry
	// ceiling; the notification is logged and dropped, never re-queued.
	DroppedRetryExhausted
	// Aborted means the attempt sequence was interrupted by process
	// shutdown. Not a terminal verdict: the entry must stay unmarked in
	// the ledger so the next cycle retries it.
	Aborted
)

func (r Result) String() string {
	switch r {
	case Sent:
		return "sent"
	case DroppedPermanent:
		return "dropped_permanent"
	case DroppedRetryExhausted:
		return "dropped_retry_exhausted"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// FloodError is the sink's rate-limit rejection. RetryAfter is
// authoritative: the scheduler must suspend exactly that long before the
// next attempt, never a locally chosen backoff.
type FloodError struct {
	RetryAfter time.Duration
}

func (e *FloodError) Error() string {
	return fmt.Sprintf("flood control: retry after %s", e.RetryAfter)
}

// Sink is the messaging collaborator. Implementations return nil on
// success, a *FloodError when rate-limited, and any other error for
// permanent rejections.
type Sink interface {
	SendText(ctx context.Context, text string, silent bool) error
	SendPhoto(ctx context.Context, photoURL, caption string, silent bool) error
}
