package notify

import (
	"context"
	"fmt"

	"gopkg.in/telebot.v4"
)

// TelegramAPI is the part of telebot.Bot the sink uses.
type TelegramAPI interface {
	// Send delivers a message to the recipient.
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// TelegramSink sends alerts to one Telegram chat.
type TelegramSink struct {
	bot  TelegramAPI
	chat *telebot.Chat
}

// NewTelegramSink creates a sink that sends through bot to chatID.
func NewTelegramSink(bot TelegramAPI, chatID int64) *TelegramSink {
	return &TelegramSink{bot: bot, chat: &telebot.Chat{ID: chatID}}
}

// Name implements AlertSink.
func (t *TelegramSink) Name() string {
	return "telegram"
}

// DeliverAlert implements AlertSink.
func (t *TelegramSink) DeliverAlert(ctx context.Context, body string) error {
	const opn = "notify.TelegramSink.DeliverAlert"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	// Plain text: SKUs and URLs are not Markdown-safe.
	_, err := t.bot.Send(t.chat, body, &telebot.SendOptions{
		ParseMode:             telebot.ModeDefault,
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("%s: failed to send message to chat %d: %w", opn, t.chat.ID, err)
	}

	return nil
}
