package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "feedherald:seen:"

// Redis is the keyed external-store ledger: history is shared across
// restarts (and instances) and expiry is delegated to the store's TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func OpenRedis(addr string, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Redis{client: client, ttl: ttl}, nil
}

func (r *Redis) Seen(ctx context.Context, id string) bool {
	if id == "" {
		return false
	}

	count, err := r.client.Exists(ctx, redisKeyPrefix+id).Result()
	if err != nil {
		slog.Warn("Ledger lookup failed, treating as not seen", "id", id, "error", err)
		return false
	}
	return count > 0
}

func (r *Redis) Mark(ctx context.Context, id string) {
	if id == "" {
		return
	}

	if err := r.client.Set(ctx, redisKeyPrefix+id, 1, r.ttl).Err(); err != nil {
		slog.Warn("Ledger mark failed", "id", id, "error", err)
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}
