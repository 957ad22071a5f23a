package ledger

import (
	"context"
	"sync"
	"time"
)

const sweepEvery = 500

// Memory is the in-process ledger for single-instance deployments.
// History does not survive restarts; expired identifiers are swept
// opportunistically on Mark so the set stays bounded.
type Memory struct {
	mu      sync.Mutex
	seen    map[string]time.Time // id -> expiry
	ttl     time.Duration
	ops     uint64
	nowFunc func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		seen:    make(map[string]time.Time),
		ttl:     ttl,
		nowFunc: time.Now,
	}
}

func (m *Memory) Seen(_ context.Context, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	until, ok := m.seen[id]
	if !ok {
		return false
	}
	if m.nowFunc().After(until) {
		delete(m.seen, id)
		return false
	}
	return true
}

func (m *Memory) Mark(_ context.Context, id string) {
	if id == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.seen[id] = m.nowFunc().Add(m.ttl)

	m.ops++
	if m.ops%sweepEvery == 0 {
		now := m.nowFunc()
		for k, until := range m.seen {
			if now.After(until) {
				delete(m.seen, k)
			}
		}
	}
}

func (m *Memory) Close() error {
	return nil
}

// Len reports the current number of tracked identifiers.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.seen)
}
