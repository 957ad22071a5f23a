// Package poller drives the pipeline: fetch feeds on an interval, drop
// duplicates, resolve content, summarize, and hand notifications to the
// delivery scheduler one at a time.
package poller

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"feedherald/app/config"
	"feedherald/app/content"
	"feedherald/app/delivery"
	"feedherald/app/feed"
	"feedherald/app/ledger"
	"feedherald/app/metrics"
	"feedherald/app/summary"
)

type Fetcher interface {
	Fetch(ctx context.Context, f config.Feed) ([]feed.Entry, error)
}

type ContentResolver interface {
	Resolve(ctx context.Context, entry feed.Entry) content.ResolvedContent
}

type Summarizer interface {
	Reduce(ctx context.Context, title, body string, maxWords int) string
}

type Deliverer interface {
	Deliver(ctx context.Context, n delivery.Notification) delivery.Result
}

var _ Fetcher = (*feed.Source)(nil)
var _ ContentResolver = (*content.Resolver)(nil)
var _ Summarizer = (*summary.Reducer)(nil)
var _ Deliverer = (*delivery.Scheduler)(nil)

type Poller struct {
	feeds     []config.Feed
	fetcher   Fetcher
	resolver  ContentResolver
	reducer   Summarizer
	deliverer Deliverer
	seen      ledger.Ledger
	branding  string
	interval  time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewPoller(feeds []config.Feed, fetcher Fetcher, resolver ContentResolver,
	reducer Summarizer, deliverer Deliverer, seen ledger.Ledger,
	branding string, interval time.Duration) *Poller {
	ctx, cancel := context.WithCancel(context.Background())

	return &Poller{
		feeds:     feeds,
		fetcher:   fetcher,
		resolver:  resolver,
		reducer:   reducer,
		deliverer: deliverer,
		seen:      seen,
		branding:  branding,
		interval:  interval,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start launches the poll loop: one immediate cycle, then one per interval.
func (p *Poller) Start() {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.RunCycle(p.ctx)

		for {
			select {
			case <-p.ctx.Done():
				return
			case <-ticker.C:
				p.RunCycle(p.ctx)
			}
		}
	}()
}

func (p *Poller) Stop() {
	p.cancel()
	p.wg.Wait()
}

// RunCycle polls every enabled feed once. A failing feed is logged and
// skipped; it never aborts the cycle.
func (p *Poller) RunCycle(ctx context.Context) {
	for _, f := range p.feeds {
		if ctx.Err() != nil {
			return
		}
		if !f.IsEnabled() {
			continue
		}

		entries, err := p.fetcher.Fetch(ctx, f)
		metrics.ObserveFetch(f.Name, err)
		if err != nil {
			slog.Warn("Feed fetch failed, skipping", "feed", f.Name, "error", err)
			continue
		}

		slog.Debug("Feed fetched", "feed", f.Name, "entries", len(entries))
		p.processEntries(ctx, f, entries)
	}
}

func (p *Poller) processEntries(ctx context.Context, f config.Feed, entries []feed.Entry) {
	sortOldestFirst(entries)

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		p.processEntry(ctx, f, entry)
	}
}

func (p *Poller) processEntry(ctx context.Context, f config.Feed, entry feed.Entry) {
	if entry.GUID == "" {
		slog.Warn("Entry has no identifier, skipping", "feed", f.Name, "title", entry.Title)
		metrics.ObserveEntry(metrics.OutcomeSkipped)
		return
	}

	if p.seen.Seen(ctx, entry.GUID) {
		metrics.ObserveEntry(metrics.OutcomeDuplicate)
		return
	}

	resolved := p.resolver.Resolve(ctx, entry)
	if resolved.Body == "" {
		// Nothing to say about this entry yet. Leave it unmarked so a
		// later cycle can retry once the article is reachable.
		slog.Warn("No content resolved, deferring entry", "feed", f.Name, "guid", entry.GUID)
		metrics.ObserveEntry(metrics.OutcomeSkipped)
		return
	}

	budget := summary.CaptionBudget(entry.Title, p.branding)
	sum := p.reducer.Reduce(ctx, entry.Title, resolved.Body, budget)

	result := p.deliverer.Deliver(ctx, delivery.Notification{
		Title:    entry.Title,
		Summary:  sum,
		MediaURL: resolved.MediaURL,
	})

	// An abandoned in-flight attempt (shutdown) is not a verdict on the
	// entry; leave it unmarked so the next cycle retries it.
	if result == delivery.Aborted {
		slog.Debug("Delivery aborted, leaving entry unmarked", "feed", f.Name, "guid", entry.GUID)
		return
	}

	// Every terminal outcome marks the entry: a dropped notification is a
	// decision, not something to re-litigate next cycle.
	p.seen.Mark(ctx, entry.GUID)

	switch result {
	case delivery.Sent:
		metrics.ObserveEntry(metrics.OutcomeDelivered)
	default:
		metrics.ObserveEntry(metrics.OutcomeDropped)
	}

	slog.Info("Entry processed", "feed", f.Name, "guid", entry.GUID, "result", result.String())
}

// sortOldestFirst orders entries by publish date ascending so deliveries
// arrive in chronological order. Entries without a date keep their feed
// position.
func sortOldestFirst(entries []feed.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].PublishedAt == nil || entries[j].PublishedAt == nil {
			return false
		}
		return entries[i].PublishedAt.Before(*entries[j].PublishedAt)
	})
}
