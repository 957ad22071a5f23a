package feed

import "time"

// Entry is one normalized item yielded by a feed source. Immutable once
// parsed; the GUID is the dedup key for the whole pipeline.
type Entry struct {
	GUID        string
	Title       string
	Link        string
	Summary     string
	MediaURL    string
	PublishedAt *time.Time
}
