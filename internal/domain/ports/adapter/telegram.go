// File: internal/domain/ports/adapter/telegram.go
package adapter

import (
	"context"

	"github.com/Brze0x/sixties-life-bot/internal/domain/pagination"
)

// TelegramBotAdapter is the outbound side of the bot. A nil keyboard sends the
// message without reply markup.
type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendKeyboard(ctx context.Context, chatID int64, text string, kb *pagination.Keyboard) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
}
