package api

import (
	"time"

	"feedherald/app/config"
)

type Handler struct {
	feeds     []config.Feed
	version   string
	startedAt time.Time
}
