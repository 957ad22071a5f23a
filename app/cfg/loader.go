package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Telegram configuration
	BotToken string `long:"bot-token" env:"BOT_TOKEN" description:"Telegram bot token (required)" required:"true"`
	ChatID   int64  `long:"chat-id" env:"CHAT_ID" description:"Telegram chat or channel ID (required)" required:"true"`

	// Summarization configuration
	SummaryProvider string `long:"summary-provider" env:"SUMMARY_PROVIDER" choice:"huggingface" choice:"openai" description:"Remote summarization provider (unset disables remote summarization)"`
	HFAPIKey        string `long:"hf-api-key" env:"HF_API_KEY" description:"Hugging Face Inference API key"`
	HFModel         string `long:"hf-model" env:"HF_MODEL" default:"sshleifer/distilbart-cnn-12-6" description:"Hugging Face summarization model"`
	OpenAIAPIKey    string `long:"openai-api-key" env:"OPENAI_API_KEY" description:"OpenAI API key"`

	// Feed configuration
	Feeds     []string `long:"feed" env:"FEEDS" env-delim:"," description:"Feed URL (repeatable; env is comma-separated)"`
	FeedsFile string   `long:"feeds-file" env:"FEEDS_FILE" description:"YAML file with feed definitions"`

	// Pipeline timing
	PollInterval    time.Duration `long:"poll-interval" env:"POLL_INTERVAL" default:"10m" description:"Delay between poll cycles"`
	DeliveryDelay   time.Duration `long:"delivery-delay" env:"DELIVERY_DELAY" default:"5s" description:"Minimum delay between outbound deliveries"`
	AudibleCooldown time.Duration `long:"audible-cooldown" env:"AUDIBLE_COOLDOWN" default:"1h" description:"Minimum spacing between audible deliveries"`
	MaxRetries      int           `long:"max-retries" env:"MAX_RETRIES" default:"3" description:"Flood-control retry ceiling per delivery"`

	// Dedup ledger
	LedgerBackend string        `long:"ledger-backend" env:"LEDGER_BACKEND" default:"memory" choice:"memory" choice:"sqlite" choice:"redis" description:"Backing store for the dedup ledger"`
	SeenTTL       time.Duration `long:"seen-ttl" env:"SEEN_TTL" default:"168h" description:"Retention window for delivered item identifiers"`
	DBPath        string        `long:"db-path" env:"DB_PATH" default:"./data/feedherald.db" description:"SQLite database path (ledger-backend=sqlite)"`
	RedisAddr     string        `long:"redis-addr" env:"REDIS_ADDR" default:"localhost:6379" description:"Redis address (ledger-backend=redis)"`

	// Application configuration
	Port     string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	Branding string `long:"branding" env:"BRANDING" default:"Follow us for the latest updates in tech and AI!" description:"Footer appended to every notification"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Feed Herald/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		BotToken:        raw.BotToken,
		ChatID:          raw.ChatID,
		SummaryProvider: raw.SummaryProvider,
		HFAPIKey:        raw.HFAPIKey,
		HFModel:         raw.HFModel,
		OpenAIAPIKey:    raw.OpenAIAPIKey,
		Feeds:           raw.Feeds,
		FeedsFile:       raw.FeedsFile,
		PollInterval:    raw.PollInterval,
		DeliveryDelay:   raw.DeliveryDelay,
		AudibleCooldown: raw.AudibleCooldown,
		MaxRetries:      raw.MaxRetries,
		LedgerBackend:   raw.LedgerBackend,
		SeenTTL:         raw.SeenTTL,
		DBPath:          raw.DBPath,
		RedisAddr:       raw.RedisAddr,
		Port:            raw.Port,
		Branding:        raw.Branding,
		UserAgent:       raw.UserAgent,
		Timezone:        raw.Timezone,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// SetForTesting installs a configuration without going through flag
// parsing. Test helper only.
func SetForTesting(cfg *Cfg) {
	globalCfg = cfg
}

func validate(cfg *Cfg) error {
	if len(cfg.Feeds) == 0 && cfg.FeedsFile == "" {
		return fmt.Errorf("no feeds configured: set FEEDS or FEEDS_FILE")
	}
	if cfg.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("max retries must be non-negative")
	}
	if cfg.SummaryProvider == "huggingface" && cfg.HFAPIKey == "" {
		return fmt.Errorf("summary provider 'huggingface' requires HF_API_KEY")
	}
	if cfg.SummaryProvider == "openai" && cfg.OpenAIAPIKey == "" {
		return fmt.Errorf("summary provider 'openai' requires OPENAI_API_KEY")
	}
	return nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
