package notify

import (
	"encoding/json"
	"fmt"

	"arenda/internal/config"
	"arenda/internal/events"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// TelegramNotifier forwards booking and comment events to a telegram
// chat. A notifier without a bot token is a no-op.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *zerolog.Logger
}

func NewTelegramNotifier(cfg config.TelegramConfig, logger *zerolog.Logger) (*TelegramNotifier, error) {
	n := &TelegramNotifier{chatID: cfg.ChatID, logger: logger}
	if cfg.BotToken == "" {
		logger.Info().Msg("telegram notifications disabled: no bot token")
		return n, nil
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	n.bot = bot
	logger.Info().Str("bot", bot.Self.UserName).Msg("telegram notifier ready")
	return n, nil
}

func (n *TelegramNotifier) Notify(eventType string, payload []byte) error {
	if n.bot == nil {
		return nil
	}

	text, err := formatMessage(eventType, payload)
	if err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

func formatMessage(eventType string, payload []byte) (string, error) {
	switch eventType {
	case events.EventBookingCreated, events.EventBookingApproved, events.EventBookingRejected:
		var p events.BookingEventPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return "", fmt.Errorf("decode booking payload: %w", err)
		}
		icon := "🆕"
		switch eventType {
		case events.EventBookingApproved:
			icon = "✅"
		case events.EventBookingRejected:
			icon = "❌"
		}
		return fmt.Sprintf("%s Бронирование #%d: %s\n%s → %s (%s)\nАрендатор: %s",
			icon, p.BookingID, p.ItemName,
			p.Start.Format("02.01.2006 15:04"), p.End.Format("02.01.2006 15:04"),
			p.Status, p.BookerName), nil

	case events.EventCommentAdded:
		var p events.CommentEventPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return "", fmt.Errorf("decode comment payload: %w", err)
		}
		return fmt.Sprintf("💬 Новый отзыв о %s от %s", p.ItemName, p.AuthorName), nil
	}

	return fmt.Sprintf("Событие %s", eventType), nil
}
