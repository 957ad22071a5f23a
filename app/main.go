package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedherald/app/api"
	"feedherald/app/cfg"
	"feedherald/app/config"
	"feedherald/app/content"
	"feedherald/app/delivery"
	"feedherald/app/feed"
	"feedherald/app/ledger"
	"feedherald/app/poller"
	"feedherald/app/summary"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Feed Herald", "version", appCfg.Version)

	feeds, err := config.Load(appCfg.Feeds, appCfg.FeedsFile)
	if err != nil {
		slog.Error("Failed to load feed configurations", "error", err)
		os.Exit(1)
	}
	slog.Info("Feed configurations loaded", "count", len(feeds))

	seen, err := ledger.Open(appCfg.LedgerBackend, appCfg.DBPath, appCfg.RedisAddr, appCfg.SeenTTL)
	if err != nil {
		slog.Error("Failed to open dedup ledger", "backend", appCfg.LedgerBackend, "error", err)
		os.Exit(1)
	}
	defer seen.Close()
	slog.Info("Dedup ledger ready", "backend", appCfg.LedgerBackend, "ttl", appCfg.SeenTTL.String())

	sink, err := delivery.NewTelegramSink(appCfg.BotToken, appCfg.ChatID)
	if err != nil {
		slog.Error("Failed to initialize Telegram sink", "error", err)
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	source := feed.NewSource(httpClient, feed.NewParser(), appCfg.UserAgent)
	resolver := content.NewDefaultResolver(httpClient, appCfg.UserAgent, content.DefaultStrategyTimeout)
	reducer := summary.NewReducer(buildProvider(appCfg))
	scheduler := delivery.NewScheduler(sink, appCfg.Branding, appCfg.DeliveryDelay,
		appCfg.MaxRetries, appCfg.AudibleCooldown)

	feedPoller := poller.NewPoller(feeds, source, resolver, reducer, scheduler,
		seen, appCfg.Branding, appCfg.PollInterval)
	feedPoller.Start()
	defer feedPoller.Stop()
	slog.Info("Poll loop started", "interval", appCfg.PollInterval.String())

	handler := api.NewHandler(feeds, appCfg.Version)
	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      api.NewServer(handler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error, shutting down", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Poller and ledger are stopped via defer
	slog.Info("Feed Herald shutdown complete")
}

// buildProvider selects the remote summarization backend; nil means the
// reducer only truncates.
func buildProvider(appCfg *cfg.Cfg) summary.Provider {
	switch appCfg.SummaryProvider {
	case "huggingface":
		return summary.NewHuggingFaceProvider(nil, appCfg.HFAPIKey, appCfg.HFModel)
	case "openai":
		return summary.NewOpenAIProvider(appCfg.OpenAIAPIKey)
	default:
		return nil
	}
}
