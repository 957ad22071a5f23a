package config

// Feed describes one feed source to poll.
type Feed struct {
	URL     string `yaml:"url"`
	Name    string `yaml:"name"`
	Enabled *bool  `yaml:"enabled"`
	Timeout int    `yaml:"timeout"` // seconds
}

// File is the top-level structure of a feeds YAML file.
type File struct {
	Feeds []Feed `yaml:"feeds"`
}

// IsEnabled reports whether the feed should be polled. Feeds are enabled
// unless explicitly disabled.
func (f Feed) IsEnabled() bool {
	return f.Enabled == nil || *f.Enabled
}
