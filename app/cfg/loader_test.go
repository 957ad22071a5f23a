package cfg

import (
	"testing"
	"time"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Cfg {
		return &Cfg{
			BotToken:     "token",
			ChatID:       -100123,
			Feeds:        []string{"https://example.com/feed.xml"},
			PollInterval: 10 * time.Minute,
			MaxRetries:   3,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Cfg)
		wantErr bool
	}{
		{"valid minimal config", func(c *Cfg) {}, false},
		{"no feeds and no feeds file", func(c *Cfg) { c.Feeds = nil }, true},
		{"feeds file alone is enough", func(c *Cfg) {
			c.Feeds = nil
			c.FeedsFile = "./feeds.yml"
		}, false},
		{"zero poll interval", func(c *Cfg) { c.PollInterval = 0 }, true},
		{"negative max retries", func(c *Cfg) { c.MaxRetries = -1 }, true},
		{"huggingface provider without key", func(c *Cfg) { c.SummaryProvider = "huggingface" }, true},
		{"huggingface provider with key", func(c *Cfg) {
			c.SummaryProvider = "huggingface"
			c.HFAPIKey = "hf_xxx"
		}, false},
		{"openai provider without key", func(c *Cfg) { c.SummaryProvider = "openai" }, true},
		{"openai provider with key", func(c *Cfg) {
			c.SummaryProvider = "openai"
			c.OpenAIAPIKey = "sk-xxx"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := validate(cfg)
			if tt.wantErr && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected validation error: %v", err)
			}
		})
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		BotToken:        "test-token",
		ChatID:          -1001234567890,
		Feeds:           []string{"https://a.example/feed", "https://b.example/feed"},
		PollInterval:    10 * time.Minute,
		DeliveryDelay:   5 * time.Second,
		AudibleCooldown: time.Hour,
		MaxRetries:      3,
		LedgerBackend:   "sqlite",
		SeenTTL:         168 * time.Hour,
		Port:            "8080",
		UserAgent:       "Test Agent",
		Debug:           true,
	}

	if cfg.ChatID != -1001234567890 {
		t.Errorf("Expected chat ID -1001234567890, got %d", cfg.ChatID)
	}
	if len(cfg.Feeds) != 2 {
		t.Errorf("Expected 2 feeds, got %d", len(cfg.Feeds))
	}
	if cfg.AudibleCooldown != time.Hour {
		t.Errorf("Expected audible cooldown 1h, got %s", cfg.AudibleCooldown)
	}
	if cfg.LedgerBackend != "sqlite" {
		t.Errorf("Expected ledger backend 'sqlite', got '%s'", cfg.LedgerBackend)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}
