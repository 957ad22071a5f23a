package ledger

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

// backends that need no external service.
func openTestLedgers(t *testing.T, ttl time.Duration) map[string]Ledger {
	t.Helper()

	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"), ttl)
	if err != nil {
		t.Fatalf("Failed to open sqlite ledger: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Ledger{
		"memory": NewMemory(ttl),
		"sqlite": sqlite,
	}
}

func TestLedgerMarkThenSeen(t *testing.T) {
	for name, l := range openTestLedgers(t, time.Hour) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if l.Seen(ctx, "item-1") {
				t.Error("Expected unseen before mark")
			}

			l.Mark(ctx, "item-1")
			if !l.Seen(ctx, "item-1") {
				t.Error("Expected seen after mark")
			}

			// Mark is idempotent.
			l.Mark(ctx, "item-1")
			if !l.Seen(ctx, "item-1") {
				t.Error("Expected still seen after repeated mark")
			}

			if l.Seen(ctx, "item-2") {
				t.Error("Expected unrelated identifier unseen")
			}
		})
	}
}

func TestLedgerEmptyIdentifier(t *testing.T) {
	for name, l := range openTestLedgers(t, time.Hour) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			l.Mark(ctx, "")
			if l.Seen(ctx, "") {
				t.Error("Expected empty identifier never seen")
			}
		})
	}
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory(time.Hour)
	now := time.Now()
	m.nowFunc = func() time.Time { return now }

	ctx := context.Background()
	m.Mark(ctx, "item-1")
	if !m.Seen(ctx, "item-1") {
		t.Fatal("Expected seen within TTL")
	}

	now = now.Add(2 * time.Hour)
	if m.Seen(ctx, "item-1") {
		t.Error("Expected expired identifier treated as unseen")
	}
	if m.Len() != 0 {
		t.Errorf("Expected expired entry removed on lookup, have %d", m.Len())
	}
}

func TestMemorySweep(t *testing.T) {
	m := NewMemory(time.Hour)
	now := time.Now()
	m.nowFunc = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < sweepEvery-1; i++ {
		m.Mark(ctx, fmt.Sprintf("old-%d", i))
	}

	now = now.Add(2 * time.Hour)
	m.Mark(ctx, "fresh") // crosses the sweep threshold

	if got := m.Len(); got != 1 {
		t.Errorf("Expected sweep to keep only the fresh entry, have %d", got)
	}
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	first, err := OpenSQLite(path, time.Hour)
	if err != nil {
		t.Fatalf("Failed to open ledger: %v", err)
	}
	first.Mark(ctx, "item-1")
	if err := first.Close(); err != nil {
		t.Fatalf("Failed to close ledger: %v", err)
	}

	second, err := OpenSQLite(path, time.Hour)
	if err != nil {
		t.Fatalf("Failed to reopen ledger: %v", err)
	}
	defer second.Close()

	if !second.Seen(ctx, "item-1") {
		t.Error("Expected history to survive restart")
	}
}

func TestSQLiteExpiredNotSeen(t *testing.T) {
	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "ttl.db"), -time.Second)
	if err != nil {
		t.Fatalf("Failed to open ledger: %v", err)
	}
	defer sqlite.Close()

	ctx := context.Background()
	sqlite.Mark(ctx, "item-1")
	if sqlite.Seen(ctx, "item-1") {
		t.Error("Expected identifier past its retention window treated as unseen")
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open("etcd", "", "", time.Hour); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestOpenMemory(t *testing.T) {
	l, err := Open("memory", "", "", time.Hour)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer l.Close()
	if _, ok := l.(*Memory); !ok {
		t.Errorf("Expected memory backend, got %T", l)
	}
}
