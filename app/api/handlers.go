package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"feedherald/app/config"
	"feedherald/app/metrics"
)

func NewHandler(feeds []config.Feed, version string) *Handler {
	return &Handler{
		feeds:     feeds,
		version:   version,
		startedAt: time.Now(),
	}
}

// GetRoot is the liveness banner hit by uptime monitors.
func (h *Handler) GetRoot(c *gin.Context) {
	c.String(http.StatusOK, "Feed Herald is running!")
}

func (h *Handler) GetHealth(c *gin.Context) {
	enabled := 0
	for _, f := range h.feeds {
		if f.IsEnabled() {
			enabled++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"version":       h.version,
		"uptime":        time.Since(h.startedAt).Round(time.Second).String(),
		"feeds":         len(h.feeds),
		"enabled_feeds": enabled,
		"timestamp":     time.Now().In(time.Local).Format(time.RFC3339),
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, metrics.Snapshot())
}
