package content

import (
	"context"
	"strings"
	"testing"

	"feedherald/app/feed"
)

type fakeStrategy struct {
	name  string
	body  string
	media string
	calls int
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Attempt(_ context.Context, _ feed.Entry) (string, string) {
	f.calls++
	return f.body, f.media
}

func TestResolverFallbackOrdering(t *testing.T) {
	primary := &fakeStrategy{name: "primary"}
	secondary := &fakeStrategy{name: "secondary", body: "secondary body", media: "https://img.example/s.jpg"}

	resolver := NewResolver(primary, secondary)

	resolved := resolver.Resolve(context.Background(), feed.Entry{GUID: "e1"})
	if resolved.Body != "secondary body" {
		t.Errorf("Expected secondary body, got '%s'", resolved.Body)
	}
	if resolved.MediaURL != "https://img.example/s.jpg" {
		t.Errorf("Expected secondary media, got '%s'", resolved.MediaURL)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Errorf("Expected each strategy attempted once, got %d/%d", primary.calls, secondary.calls)
	}
}

func TestResolverStopsWhenComplete(t *testing.T) {
	first := &fakeStrategy{name: "first", body: "body", media: "https://img.example/a.jpg"}
	second := &fakeStrategy{name: "second"}

	resolver := NewResolver(first, second)
	resolver.Resolve(context.Background(), feed.Entry{GUID: "e1"})

	if second.calls != 0 {
		t.Error("Expected later strategies skipped once body and media are resolved")
	}
}

func TestResolverMediaResolvesIndependently(t *testing.T) {
	// First strategy finds body but no media; a later one supplies media.
	first := &fakeStrategy{name: "first", body: "body text"}
	second := &fakeStrategy{name: "second", body: "ignored", media: "https://img.example/late.jpg"}

	resolver := NewResolver(first, second)

	resolved := resolver.Resolve(context.Background(), feed.Entry{GUID: "e1"})
	if resolved.Body != "body text" {
		t.Errorf("Expected first strategy's body kept, got '%s'", resolved.Body)
	}
	if resolved.MediaURL != "https://img.example/late.jpg" {
		t.Errorf("Expected later strategy's media, got '%s'", resolved.MediaURL)
	}
}

func TestResolverAllEmpty(t *testing.T) {
	resolver := NewResolver(&fakeStrategy{name: "a"}, &fakeStrategy{name: "b"})

	resolved := resolver.Resolve(context.Background(), feed.Entry{GUID: "e1"})
	if resolved.Body != "" || resolved.MediaURL != "" {
		t.Errorf("Expected empty result, got %+v", resolved)
	}
}

func TestFeedNativeStrategy(t *testing.T) {
	entry := feed.Entry{
		GUID:     "e1",
		Summary:  "A short feed summary",
		MediaURL: "https://img.example/enc.jpg",
	}

	body, media := FeedNativeStrategy{}.Attempt(context.Background(), entry)
	if body != entry.Summary {
		t.Errorf("Expected feed summary as body, got '%s'", body)
	}
	if media != entry.MediaURL {
		t.Errorf("Expected feed enclosure as media, got '%s'", media)
	}
}

func TestValidText(t *testing.T) {
	prose := make([]string, 60)
	for i := range prose {
		prose[i] = "word" + string(rune('a'+i%26)) + string(rune('a'+i/26))
	}

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty", "", false},
		{"too short", "only a few words here", false},
		{"enough distinct words", strings.Join(prose, " "), true},
		{"excessive repetition", strings.Repeat("buy now ", 60), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidText(tt.input); got != tt.want {
				t.Errorf("ValidText(%q...) = %v, want %v", tt.input[:min(20, len(tt.input))], got, tt.want)
			}
		})
	}
}
