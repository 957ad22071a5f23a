package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v4"
)

// TelegramSink posts notifications to one chat or channel via the Bot API.
type TelegramSink struct {
	bot  *tele.Bot
	chat *tele.Chat
}

func NewTelegramSink(token string, chatID int64) (*TelegramSink, error) {
	bot, err := tele.NewBot(tele.Settings{Token: token})
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	return &TelegramSink{
		bot:  bot,
		chat: &tele.Chat{ID: chatID},
	}, nil
}

func (s *TelegramSink) SendText(ctx context.Context, text string, silent bool) error {
	_, err := s.bot.Send(s.chat, text, sendOptions(silent))
	return classify(err)
}

func (s *TelegramSink) SendPhoto(ctx context.Context, photoURL, caption string, silent bool) error {
	photo := &tele.Photo{
		File:    tele.FromURL(photoURL),
		Caption: caption,
	}
	_, err := s.bot.Send(s.chat, photo, sendOptions(silent))
	return classify(err)
}

func sendOptions(silent bool) *tele.SendOptions {
	return &tele.SendOptions{
		ParseMode:             tele.ModeMarkdown,
		DisableNotification:   silent,
		DisableWebPagePreview: true,
	}
}

// classify maps telebot's flood rejection onto the scheduler's FloodError
// contract; everything else passes through as a permanent error.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var flood tele.FloodError
	if errors.As(err, &flood) {
		return &FloodError{RetryAfter: time.Duration(flood.RetryAfter) * time.Second}
	}
	return err
}
