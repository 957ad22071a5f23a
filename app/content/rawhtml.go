package content

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"feedherald/app/feed"
)

// RawHTMLStrategy is the generic fallback when structured extraction
// yields nothing: fetch the page, join all paragraph text, and take the
// og:image meta (or failing that, the first image on the page) as media.
type RawHTMLStrategy struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

func NewRawHTMLStrategy(httpClient *http.Client, userAgent string, timeout time.Duration) *RawHTMLStrategy {
	return &RawHTMLStrategy{
		httpClient: httpClient,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

func (s *RawHTMLStrategy) Name() string {
	return "raw-html"
}

func (s *RawHTMLStrategy) Attempt(ctx context.Context, entry feed.Entry) (string, string) {
	data, err := fetchPage(ctx, s.httpClient, entry.Link, s.userAgent, s.timeout)
	if err != nil {
		slog.Debug("Raw HTML fetch failed", "link", entry.Link, "error", err)
		return "", ""
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		slog.Debug("Raw HTML parse failed", "link", entry.Link, "error", err)
		return "", ""
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	body := strings.Join(strings.Fields(strings.Join(paragraphs, " ")), " ")
	if !ValidText(body) {
		body = ""
	}

	return body, extractPageImage(doc)
}

func extractPageImage(doc *goquery.Document) string {
	if content, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok && content != "" {
		return content
	}
	if src, ok := doc.Find("img[src]").First().Attr("src"); ok {
		return src
	}
	return ""
}
