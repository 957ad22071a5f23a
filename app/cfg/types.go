package cfg

import "time"

type Cfg struct {
	// Telegram configuration
	BotToken string
	ChatID   int64

	// Summarization configuration
	SummaryProvider string
	HFAPIKey        string
	HFModel         string
	OpenAIAPIKey    string

	// Feed configuration
	Feeds     []string
	FeedsFile string

	// Pipeline timing
	PollInterval    time.Duration
	DeliveryDelay   time.Duration
	AudibleCooldown time.Duration
	MaxRetries      int

	// Dedup ledger
	LedgerBackend string
	SeenTTL       time.Duration
	DBPath        string
	RedisAddr     string

	// Application configuration
	Port     string
	Branding string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
