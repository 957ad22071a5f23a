package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimeout = 30 // seconds
)

// Load merges feed URLs supplied directly (FEEDS) with an optional YAML
// feeds file (FEEDS_FILE). Duplicate URLs collapse, first definition wins,
// so a file entry can carry a name/timeout for a URL also listed in the
// environment.
func Load(urls []string, feedsFile string) ([]Feed, error) {
	var feeds []Feed

	if feedsFile != "" {
		fromFile, err := loadFile(feedsFile)
		if err != nil {
			return nil, err
		}
		feeds = append(feeds, fromFile...)
	}

	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		feeds = append(feeds, Feed{URL: u})
	}

	feeds = dedupe(feeds)

	for i := range feeds {
		setDefaults(&feeds[i])
		if err := validate(feeds[i]); err != nil {
			return nil, fmt.Errorf("invalid feed %q: %w", feeds[i].URL, err)
		}
	}

	if len(feeds) == 0 {
		return nil, fmt.Errorf("no feeds configured")
	}

	return feeds, nil
}

func loadFile(path string) ([]Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feeds file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse feeds file: %w", err)
	}

	return file.Feeds, nil
}

func dedupe(feeds []Feed) []Feed {
	seen := make(map[string]bool, len(feeds))
	out := feeds[:0]
	for _, f := range feeds {
		if seen[f.URL] {
			continue
		}
		seen[f.URL] = true
		out = append(out, f)
	}
	return out
}

func setDefaults(f *Feed) {
	if f.Timeout == 0 {
		f.Timeout = defaultTimeout
	}
	if f.Name == "" {
		if u, err := url.Parse(f.URL); err == nil && u.Host != "" {
			f.Name = u.Host
		} else {
			f.Name = f.URL
		}
	}
}

func validate(f Feed) error {
	if f.URL == "" {
		return fmt.Errorf("feed URL is required")
	}
	u, err := url.Parse(f.URL)
	if err != nil {
		return fmt.Errorf("feed URL is not valid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("feed URL must be http or https")
	}
	if f.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	return nil
}
