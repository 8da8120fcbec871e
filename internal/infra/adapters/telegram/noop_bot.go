package telegram

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Brze0x/sixties-life-bot/internal/domain/pagination"
	"github.com/Brze0x/sixties-life-bot/internal/domain/ports/adapter"
)

var _ adapter.TelegramBotAdapter = (*NoopBotAdapter)(nil)

// NoopBotAdapter implements adapter.TelegramBotAdapter for local/dev testing.
// It logs messages instead of sending real Telegram messages.
type NoopBotAdapter struct {
	log   *zerolog.Logger
	delay time.Duration
}

// NewNoopBotAdapter constructs the noop adapter.
func NewNoopBotAdapter(logger *zerolog.Logger) *NoopBotAdapter {
	return &NoopBotAdapter{log: logger, delay: 100 * time.Millisecond}
}

// wait simulates network latency and respects ctx.
func (b *NoopBotAdapter) wait(ctx context.Context) error {
	select {
	case <-time.After(b.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *NoopBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	return b.SendKeyboard(ctx, chatID, text, nil)
}

func (b *NoopBotAdapter) SendKeyboard(ctx context.Context, chatID int64, text string, kb *pagination.Keyboard) error {
	if err := b.wait(ctx); err != nil {
		return err
	}
	raw, _ := kb.JSON()
	b.log.Info().Int64("chat_id", chatID).Str("text", text).RawJSON("keyboard", raw).Msg("[noop-telegram] send")
	return nil
}

func (b *NoopBotAdapter) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	b.log.Debug().Int64("chat_id", chatID).Int("message_id", messageID).Msg("[noop-telegram] delete")
	return nil
}

func (b *NoopBotAdapter) AnswerCallback(ctx context.Context, callbackID, text string) error {
	b.log.Debug().Str("callback_id", callbackID).Msg("[noop-telegram] answer callback")
	return nil
}
