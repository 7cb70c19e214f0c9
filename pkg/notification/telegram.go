package notification

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

// Telegram adapts the bot client to the notify service interface so
// race alerts go out through the same bot the users talk to.
type Telegram struct {
	client  *tgbotapi.BotAPI
	chatIDs []int64
}

func (t *Telegram) SetClient(client *tgbotapi.BotAPI) {
	t.client = client
}

func (t *Telegram) AddReceivers(chatIDs ...int64) {
	t.chatIDs = append(t.chatIDs, chatIDs...)
}

func (t *Telegram) Send(ctx context.Context, subject, message string) error {
	text := subject + "\n" + message
	for _, chatID := range t.chatIDs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		msg := tgbotapi.NewMessage(chatID, text)
		if _, err := t.client.Send(msg); err != nil {
			return errors.Wrapf(err, "sending notification to chat %d", chatID)
		}
	}
	return nil
}
