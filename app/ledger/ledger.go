package ledger

import (
	"context"
	"fmt"
	"time"
)

// Ledger tracks entry identifiers that have already been delivered.
//
// Seen and Mark never surface backend errors to the pipeline: a lookup
// failure against an external store is treated as "not seen" (fail open,
// logged) so a flaky store can cause at worst a duplicate post, never a
// stalled ingestion. Mark is idempotent; once it returns, any subsequent
// Seen for the same identifier in this process reports true.
type Ledger interface {
	Seen(ctx context.Context, id string) bool
	Mark(ctx context.Context, id string)
	Close() error
}

// Open constructs the configured backend. TTL bounds ledger growth at the
// cost of possibly re-delivering an item that reappears in a feed after
// the retention window.
func Open(backend, dbPath, redisAddr string, ttl time.Duration) (Ledger, error) {
	switch backend {
	case "memory":
		return NewMemory(ttl), nil
	case "sqlite":
		return OpenSQLite(dbPath, ttl)
	case "redis":
		return OpenRedis(redisAddr, ttl)
	default:
		return nil, fmt.Errorf("unknown ledger backend: %s", backend)
	}
}
